// Package protocol collects the opcode constants cmd/worldserver wires
// up for the login/character-select/movement path, plus the three
// update-field opcodes that wrap object.Base's BuildCreateObject/
// BuildMovement/BuildPartial payloads. Every payload begins with a
// 16-bit opcode, a prefix the object package itself never writes since
// it has no session/transport dependency.
//
// Laid out as a flat const block of uint16s, CMSG_/SMSG_ prefixed by
// direction, the way utils/constants opcode tables are organized
// elsewhere in this codebase.
package protocol

const (
	OpLogin     uint16 = 0x0001 // CMSG: account name + password
	OpLoginResult uint16 = 0x0002 // SMSG: LoginStatus + character summaries

	OpCharacterSelect uint16 = 0x0004 // CMSG: character guid to enter world with

	OpCreateObject  uint16 = 0x0010 // SMSG: object.Base.BuildCreateObject payload
	OpMovementUpdate uint16 = 0x0011 // SMSG: object.Base.BuildMovement payload
	OpPartialUpdate uint16 = 0x0012 // SMSG: object.Base.BuildPartial payload
	OpDestroyObject uint16 = 0x0013 // SMSG: guid of the entity removed

	OpMoveRequest uint16 = 0x0020 // CMSG: requested x, y, z, o
)
