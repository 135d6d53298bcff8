package math

func TransformCreate() *Transform {
	return &Transform{}
}

func TransformFromPosition(position Vec3) *Transform {
	return &Transform{Position: position}
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
}

func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
}

// WorldPosition accumulates the position through the parent chain.
func (t *Transform) WorldPosition() Vec3 {
	p := t.Position
	for parent := t.Parent; parent != nil; parent = parent.Parent {
		p = p.Add(parent.Position)
	}
	return p
}

// WorldRotation accumulates the euler rotation through the parent chain.
func (t *Transform) WorldRotation() Vec3 {
	r := t.Rotation
	for parent := t.Parent; parent != nil; parent = parent.Parent {
		r = r.Add(parent.Rotation)
	}
	return r
}
