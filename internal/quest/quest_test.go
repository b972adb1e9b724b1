package quest

import (
	"testing"

	"github.com/originrealm/worldcore/internal/net/packet"
	"github.com/originrealm/worldcore/internal/persist"
)

func TestBuildQuestgiverStatus(t *testing.T) {
	pkt := BuildQuestgiverStatus(12345, DialogueStatusAvailable)
	r := packet.NewReader(pkt)
	if r.Opcode() != OpQuestgiverStatus {
		t.Fatalf("Opcode() = %#x, want %#x", r.Opcode(), OpQuestgiverStatus)
	}
	if got := r.ReadUint64(); got != 12345 {
		t.Errorf("giverGuid = %d, want 12345", got)
	}
	if got := r.ReadUint32(); got != uint32(DialogueStatusAvailable) {
		t.Errorf("status = %d, want %d", got, DialogueStatusAvailable)
	}
}

func TestBuildQuestgiverQuestList(t *testing.T) {
	entries := []QuestListEntry{
		{Entry: 1, State: 0, Level: 5, Title: "Boar Hunt"},
		{Entry: 2, State: 1, Level: 10, Title: "Wolf Pelts"},
	}
	pkt := BuildQuestgiverQuestList(99, "Greetings!", entries)
	r := packet.NewReader(pkt)
	if r.Opcode() != OpQuestgiverQuestList {
		t.Fatalf("unexpected opcode %#x", r.Opcode())
	}
	if got := r.ReadUint64(); got != 99 {
		t.Errorf("giverGuid = %d, want 99", got)
	}
	if got := r.ReadString(); got != "Greetings!" {
		t.Errorf("message = %q, want \"Greetings!\"", got)
	}
	if got := r.ReadUint32(); got != 0 {
		t.Errorf("delay = %d, want 0", got)
	}
	if got := r.ReadUint32(); got != 0 {
		t.Errorf("emote = %d, want 0", got)
	}
	if got := r.ReadByte(); got != byte(len(entries)) {
		t.Fatalf("count = %d, want %d", got, len(entries))
	}
	for _, want := range entries {
		if got := r.ReadUint32(); got != want.Entry {
			t.Errorf("entry = %d, want %d", got, want.Entry)
		}
		if got := r.ReadUint32(); got != want.State {
			t.Errorf("state = %d, want %d", got, want.State)
		}
		if got := r.ReadUint32(); got != want.Level {
			t.Errorf("level = %d, want %d", got, want.Level)
		}
		if got := r.ReadString(); got != want.Title {
			t.Errorf("title = %q, want %q", got, want.Title)
		}
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestStatusFromPersisted(t *testing.T) {
	cases := []struct {
		in   persist.QuestStatus
		want DialogueStatus
	}{
		{persist.QuestStatusIncomplete, DialogueStatusNone},
		{persist.QuestStatusComplete, DialogueStatusReward},
		{persist.QuestStatusRewarded, DialogueStatusNone},
		{persist.QuestStatusFailed, DialogueStatusNone},
		{persist.QuestStatusNone, DialogueStatusAvailable},
	}
	for _, c := range cases {
		if got := StatusFromPersisted(c.in); got != c.want {
			t.Errorf("StatusFromPersisted(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
