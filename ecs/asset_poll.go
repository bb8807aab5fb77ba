package ecs

import "iter"

// AssetCommand is a completed asynchronous result waiting to be folded into
// the world through ordinary commands.
type AssetCommand interface {
	Enqueue(c *Commands)
}

// AssetCommandFunc adapts a function to an AssetCommand.
type AssetCommandFunc func(c *Commands)

// Enqueue implements AssetCommand.
func (f AssetCommandFunc) Enqueue(c *Commands) {
	f(c)
}

// AssetSource is implemented by loader resources whose work completes
// outside the frame loop. FlushCommands returns the results that completed
// since the previous call; each call yields a finite sequence.
type AssetSource interface {
	FlushCommands() iter.Seq[AssetCommand]
}

// AssetPollSystem drains an AssetSource resource once per frame. It is
// skipped until the source resource is registered.
type AssetPollSystem[S Resource, P interface {
	*S
	AssetSource
}] struct {
	Source Res[S]
}

// NewAssetPollSystem returns a poll system for the resource type S.
func NewAssetPollSystem[S Resource, P interface {
	*S
	AssetSource
}]() *AssetPollSystem[S, P] {
	return &AssetPollSystem[S, P]{}
}

// Dependencies implements Dependent.
func (s *AssetPollSystem[S, P]) Dependencies() []Dependency {
	return []Dependency{&s.Source}
}

// Execute implements System.
func (s *AssetPollSystem[S, P]) Execute(frame *UpdateFrame) error {
	source := P(s.Source.Get())
	for cmd := range source.FlushCommands() {
		cmd.Enqueue(frame.Commands)
	}
	return nil
}
