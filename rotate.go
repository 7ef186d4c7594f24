package qmeasure

import "slices"

/*
RotateBasis collects the operations that bring every observable into the
computational basis, in observable order and then gate order. It also returns
the sorted set of wires the observables touch, so every other wire can be
treated as an implicit identity, and whether any observable asked for samples.
*/
func RotateBasis(observables []Observable) (rotations []Operation, wiresUsed []int, memory bool) {
	seen := make(map[int]bool)

	for _, obs := range observables {
		if obs.Return == Sample {
			memory = true
		}

		rotations = append(rotations, obs.rotations...)

		for _, wire := range obs.Wires {
			if !seen[wire] {
				seen[wire] = true
				wiresUsed = append(wiresUsed, wire)
			}
		}
	}

	slices.Sort(wiresUsed)
	return rotations, wiresUsed, memory
}

// RotateBasis records the used wires and sample requirement on the execution.
func (exec *Execution) RotateBasis(observables []Observable) []Operation {
	rotations, wiresUsed, memory := RotateBasis(observables)

	exec.wiresUsed = wiresUsed
	exec.memory = exec.memory || memory

	return rotations
}
