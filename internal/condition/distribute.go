package condition

import "math"

// roundsPerStart controls the default number of distinct round values:
// one per twenty points of damage.
const roundsPerStart = 20.0

// Distribute splits amount into a non-increasing sequence of per-round
// magnitudes starting at start.
//
// For round value i (start down to 1) the running sum is pushed toward the
// ramp target ((start+1-i)*amount)/start by appending i while that brings
// the sum closer to the target. Larger values repeat early and smaller
// ones late, which approximates a linear decay whose total is amount.
func Distribute(amount, start int32) []int32 {
	if amount < 0 {
		amount = -amount
	}
	if amount == 0 || start <= 0 {
		return nil
	}

	list := make([]int32, 0, int(start)*2)
	var sum int64
	for i := start; i > 0; i-- {
		n := int64(start + 1 - i)
		med := float64((n * int64(amount)) / int64(start))

		for {
			sum += int64(i)
			list = append(list, i)

			next := math.Abs(1.0 - float64(sum+int64(i))/med)
			cur := math.Abs(1.0 - float64(sum)/med)
			if !(next < cur) {
				break
			}
		}
	}
	return list
}

// defaultStartDamage is the first round value used when none is configured.
func defaultStartDamage(amount int32) int32 {
	return max(1, int32(math.Ceil(float64(amount)/roundsPerStart)))
}
