package canvas

// UndoSave pushes a copy of the editing target onto the history. Mutating
// entry points call it before they change anything.
func (c *Canvas) UndoSave() {
	c.history.Push(c.image.Clone())
	Logger().Debug("undo checkpoint", "depth", c.history.Len(), "size", c.image.Bounds().Size())
}

// Undo drops the newest checkpoint and restores the one beneath it. With a
// single checkpoint left it does nothing and returns false.
func (c *Canvas) Undo() bool {
	snap, ok := c.history.Pop()
	if !ok {
		return false
	}
	c.image.Replace(snap)
	c.syncMask()
	Logger().Debug("undo", "depth", c.history.Len())
	return true
}

// UndoLen returns the number of retained checkpoints, including the seed.
func (c *Canvas) UndoLen() int { return c.history.Len() }

// UndoDepth returns the maximum number of retained checkpoints.
func (c *Canvas) UndoDepth() int { return c.history.Depth() }
