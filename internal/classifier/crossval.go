package classifier

import (
	"math"
	"math/rand"
)

// LogSpace returns n values evenly spaced in log10 between 10^lo and 10^hi.
func LogSpace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{math.Pow(10, lo)}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = math.Pow(10, lo+step*float64(i))
	}
	return out
}

// TrainTestSplit shuffles row indices with seed and holds out ceil(testSize*n) of them.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest >= n {
		nTest = n - 1
	}
	if nTest < 0 {
		nTest = 0
	}
	return perm[nTest:], perm[:nTest]
}

// StratifiedFolds assigns each class's rows to k folds in turn, keeping the class
// balance of every fold close to the whole set.
func StratifiedFolds(y []bool, k int) [][]int {
	folds := make([][]int, k)
	var pos, neg int
	for i, v := range y {
		if v {
			folds[pos%k] = append(folds[pos%k], i)
			pos++
		} else {
			folds[neg%k] = append(folds[neg%k], i)
			neg++
		}
	}
	return folds
}

// Recall returns TP/(TP+FN), or 0 when there are no positives.
func Recall(actual, predicted []bool) float64 {
	var tp, fn int
	for i, a := range actual {
		if !a {
			continue
		}
		if predicted[i] {
			tp++
		} else {
			fn++
		}
	}
	if tp+fn == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fn)
}

// cvResult is the mean fold recall for one regularization strength.
type cvResult struct {
	C      float64
	Recall float64
}

// selectC scores every C by mean held-out recall across stratified folds and
// returns the first C with the best score. Rows are already standardized.
func selectC(x [][]float64, y []bool, cs []float64, folds, maxIterations int) (cvResult, error) {
	split := StratifiedFolds(y, folds)
	best := cvResult{C: cs[0], Recall: -1}

	for _, c := range cs {
		var total float64
		var scored int
		for f := range split {
			holdout := make(map[int]bool, len(split[f]))
			for _, i := range split[f] {
				holdout[i] = true
			}
			var trainX [][]float64
			var trainY []bool
			for i := range x {
				if !holdout[i] {
					trainX = append(trainX, x[i])
					trainY = append(trainY, y[i])
				}
			}
			if len(split[f]) == 0 || len(trainX) == 0 {
				continue
			}

			model, err := FitLogistic(trainX, trainY, BalancedWeights(trainY), c, maxIterations)
			if err != nil {
				return cvResult{}, err
			}
			actual := make([]bool, 0, len(split[f]))
			predicted := make([]bool, 0, len(split[f]))
			for _, i := range split[f] {
				actual = append(actual, y[i])
				predicted = append(predicted, model.Probability(x[i]) >= 0.5)
			}
			total += Recall(actual, predicted)
			scored++
		}
		if scored == 0 {
			continue
		}
		if mean := total / float64(scored); mean > best.Recall {
			best = cvResult{C: c, Recall: mean}
		}
	}
	if best.Recall < 0 {
		best.Recall = 0
	}
	return best, nil
}
