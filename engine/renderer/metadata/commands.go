package metadata

import (
	"fmt"
	"hash/fnv"
)

type IdentifierKind uint8

const (
	IdentifierKindNone IdentifierKind = iota
	IdentifierKindBuiltin
	IdentifierKindTemporary
	IdentifierKindTarget
)

/** @brief Names one end of a blit: a builtin buffer, a temporary or a persistent target. */
type RenderTargetIdentifier struct {
	Kind        IdentifierKind
	Builtin     BuiltinBuffer
	TemporaryID int
	Target      *RenderTarget
}

func BuiltinIdentifier(b BuiltinBuffer) RenderTargetIdentifier {
	return RenderTargetIdentifier{Kind: IdentifierKindBuiltin, Builtin: b}
}

func TemporaryIdentifier(id int) RenderTargetIdentifier {
	return RenderTargetIdentifier{Kind: IdentifierKindTemporary, TemporaryID: id}
}

func TargetIdentifier(rt *RenderTarget) RenderTargetIdentifier {
	return RenderTargetIdentifier{Kind: IdentifierKindTarget, Target: rt}
}

func (id RenderTargetIdentifier) String() string {
	switch id.Kind {
	case IdentifierKindBuiltin:
		return "builtin:" + id.Builtin.String()
	case IdentifierKindTemporary:
		return fmt.Sprintf("temporary:%d", id.TemporaryID)
	case IdentifierKindTarget:
		if id.Target == nil {
			return "target:<nil>"
		}
		return "target:" + id.Target.Name
	default:
		return "none"
	}
}

// PropertyToID hashes a tag into the integer id used for temporaries.
func PropertyToID(name string) int {
	hasher := fnv.New32a()
	hasher.Write([]byte(name))
	return int(hasher.Sum32() & 0x7fffffff)
}

type CommandType uint8

const (
	/** @brief Declare a temporary render target of a size; -1 means the camera pixel size. */
	CommandTypeGetTemporaryRT CommandType = iota
	/** @brief Publish a temporary under an explicit output name. */
	CommandTypeSetNamedOutput
	/** @brief Copy source into dest, scaling and converting format as needed. */
	CommandTypeBlit
)

type Command struct {
	Type        CommandType
	TemporaryID int
	Width       int
	Height      int
	Format      PixelFormat
	Name        string
	Source      RenderTargetIdentifier
	Dest        RenderTargetIdentifier
}

/** @brief A named, ordered list of GPU commands, executed at one camera event. */
type CommandBuffer struct {
	Name     string
	Commands []Command
}

func NewCommandBuffer(name string) *CommandBuffer {
	return &CommandBuffer{Name: name}
}

func (cb *CommandBuffer) GetTemporaryRT(id, width, height int, format PixelFormat) {
	cb.Commands = append(cb.Commands, Command{
		Type:        CommandTypeGetTemporaryRT,
		TemporaryID: id,
		Width:       width,
		Height:      height,
		Format:      format,
	})
}

func (cb *CommandBuffer) SetNamedOutput(name string, id int) {
	cb.Commands = append(cb.Commands, Command{
		Type:        CommandTypeSetNamedOutput,
		Name:        name,
		TemporaryID: id,
	})
}

func (cb *CommandBuffer) Blit(source, dest RenderTargetIdentifier) {
	cb.Commands = append(cb.Commands, Command{
		Type:   CommandTypeBlit,
		Source: source,
		Dest:   dest,
	})
}

func (cb *CommandBuffer) Clear() {
	cb.Commands = nil
}
