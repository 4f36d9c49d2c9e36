package rhythm

// Bjorklund distributes pulses as evenly as possible over steps using
// Bjorklund's algorithm (the same algorithm E. Bjorklund devised for
// neutron-accelerator timing, popularized in music as the Euclidean rhythm
// generator). Returns a boolean slice of length steps.
func Bjorklund(pulses, steps int) []bool {
	if steps <= 0 {
		return nil
	}
	if pulses <= 0 {
		return make([]bool, steps)
	}
	if pulses >= steps {
		out := make([]bool, steps)
		for i := range out {
			out[i] = true
		}
		return out
	}

	// Each group starts as its own bucket: `pulses` buckets holding [true],
	// `steps-pulses` buckets holding [false]. Repeatedly pair off the
	// trailing "remainder" buckets onto the front buckets until fewer than
	// two remainder buckets are left, then flatten.
	head := make([][]bool, pulses)
	for i := range head {
		head[i] = []bool{true}
	}
	tail := make([][]bool, steps-pulses)
	for i := range tail {
		tail[i] = []bool{false}
	}

	for len(tail) > 1 {
		n := len(head)
		if n > len(tail) {
			n = len(tail)
		}
		var newHead [][]bool
		for i := 0; i < n; i++ {
			newHead = append(newHead, append(append([]bool{}, head[i]...), tail[i]...))
		}
		var newTail [][]bool
		if len(head) > n {
			newTail = append(newTail, head[n:]...)
		}
		if len(tail) > n {
			newTail = append(newTail, tail[n:]...)
		}
		head, tail = newHead, newTail
	}

	out := make([]bool, 0, steps)
	for _, g := range head {
		out = append(out, g...)
	}
	for _, g := range tail {
		out = append(out, g...)
	}
	return out
}

// Rotate shifts a boolean pattern left by n positions (mod len(pattern)).
func Rotate(pattern []bool, n int) []bool {
	l := len(pattern)
	if l == 0 {
		return pattern
	}
	n = ((n % l) + l) % l
	out := make([]bool, l)
	for i := range pattern {
		out[i] = pattern[(i+n)%l]
	}
	return out
}
