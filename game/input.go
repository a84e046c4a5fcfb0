package game

import "gonum.org/v1/gonum/spatial/r2"

// Intent converts held directions into a movement intent with components in
// {-1, 0, 1}. Opposite directions cancel.
func Intent(up, down, left, right bool) r2.Vec {
	var v r2.Vec
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	if up {
		v.Y--
	}
	if down {
		v.Y++
	}
	return v
}
