// Package scripting wraps a single gopher-lua VM used for the two hook
// surfaces this core exposes to gameplay scripts: quest-state
// transition hooks and gameobject "on activate" scripts. Quest and
// gameplay *content* are out of scope here — only the hook boundary a
// handler would call into.
//
// Single-goroutine VM with a loadDir-per-subdirectory loading scheme,
// narrowed from a combat/item/character/skill/world/ai-scoped script
// layout down to the two hook surfaces this core covers.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only —
// the world thread is the only caller.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file under
// scriptsDir/quest and scriptsDir/gameobject. Missing subdirectories
// are not an error — a deployment may carry only one hook kind.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"quest", "gameobject"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// CallQuestHook invokes the named quest-transition hook with the
// player and quest-giver guids and the quest entry, returning whatever
// integer the script returns (a handler-defined status/branch code).
// A missing function is not an error — quests without a scripted hook
// fall through to default handler behavior.
func (e *Engine) CallQuestHook(fnName string, playerGuid, giverGuid uint64, questEntry uint32) (int, error) {
	fn := e.vm.GetGlobal(fnName)
	if fn == lua.LNil {
		return 0, nil
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
		lua.LNumber(playerGuid), lua.LNumber(giverGuid), lua.LNumber(questEntry),
	); err != nil {
		return 0, fmt.Errorf("quest hook %s: %w", fnName, err)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := ret.(lua.LNumber); ok {
		return int(n), nil
	}
	return 0, nil
}

// CallGameObjectActivate invokes a gameobject's on-activate script by
// name with the activating player's guid and the object's entry and
// guid. Returns nothing — activation scripts communicate effects via
// engine-exposed Lua API calls (out of scope here), not a return value.
func (e *Engine) CallGameObjectActivate(fnName string, playerGuid uint64, entry uint32, objectGuid uint64) error {
	fn := e.vm.GetGlobal(fnName)
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
		lua.LNumber(playerGuid), lua.LNumber(entry), lua.LNumber(objectGuid),
	); err != nil {
		return fmt.Errorf("gameobject activate %s: %w", fnName, err)
	}
	return nil
}

// Close releases the underlying Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
