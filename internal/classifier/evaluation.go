package classifier

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Evaluation holds held-out performance of a trained classifier.
type Evaluation struct {
	Samples       int     `json:"samples"`
	TrainSamples  int     `json:"train_samples"`
	TestSamples   int     `json:"test_samples"`
	C             float64 `json:"c"`
	CVRecall      float64 `json:"cv_recall"`
	Accuracy      float64 `json:"accuracy"`
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	ROCAUC        float64 `json:"roc_auc"`
	Confident     int     `json:"confident"`
	ConfidentHits int     `json:"confident_hits"`
}

// Evaluate scores probabilities against outcomes. Confident counts rows whose
// over probability exceeds threshold; ConfidentHits counts those that went over.
func Evaluate(actual []bool, probabilities []float64, threshold float64) Evaluation {
	var e Evaluation
	if len(actual) == 0 {
		return e
	}

	var tp, fp, tn, fn int
	for i, a := range actual {
		predicted := probabilities[i] >= 0.5
		switch {
		case predicted && a:
			tp++
		case predicted && !a:
			fp++
		case !predicted && a:
			fn++
		default:
			tn++
		}
		if probabilities[i] > threshold {
			e.Confident++
			if a {
				e.ConfidentHits++
			}
		}
	}

	e.TestSamples = len(actual)
	e.Accuracy = float64(tp+tn) / float64(len(actual))
	if tp+fp > 0 {
		e.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		e.Recall = float64(tp) / float64(tp+fn)
	}
	e.ROCAUC = rocAUC(actual, probabilities)
	return e
}

// rocAUC is the Mann-Whitney estimate with ties scored as one half.
// It returns 0.5 when only one class is present.
func rocAUC(actual []bool, probabilities []float64) float64 {
	type scored struct {
		p   float64
		pos bool
	}
	rows := make([]scored, len(actual))
	var pos int
	for i, a := range actual {
		rows[i] = scored{p: probabilities[i], pos: a}
		if a {
			pos++
		}
	}
	neg := len(actual) - pos
	if pos == 0 || neg == 0 {
		return 0.5
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].p < rows[j].p })

	// Sum of average ranks of the positive rows.
	var rankSum float64
	for i := 0; i < len(rows); {
		j := i
		for j < len(rows) && rows[j].p == rows[i].p {
			j++
		}
		avgRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if rows[k].pos {
				rankSum += avgRank
			}
		}
		i = j
	}
	return (rankSum - float64(pos*(pos+1))/2) / float64(pos*neg)
}

// ToJSON exports the evaluation to JSON.
func (e Evaluation) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

// String renders a console summary.
func (e Evaluation) String() string {
	var b strings.Builder
	b.WriteString("=== Classifier Evaluation ===\n")
	b.WriteString(fmt.Sprintf("Samples:        %d (train %d, test %d)\n", e.Samples, e.TrainSamples, e.TestSamples))
	b.WriteString(fmt.Sprintf("Chosen C:       %.4g (cv recall %.3f)\n", e.C, e.CVRecall))
	b.WriteString(fmt.Sprintf("Accuracy:       %.3f\n", e.Accuracy))
	b.WriteString(fmt.Sprintf("Precision:      %.3f\n", e.Precision))
	b.WriteString(fmt.Sprintf("Recall:         %.3f\n", e.Recall))
	b.WriteString(fmt.Sprintf("ROC AUC:        %.3f\n", e.ROCAUC))
	b.WriteString(fmt.Sprintf("Confident overs: %d (%d hit)\n", e.Confident, e.ConfidentHits))
	return b.String()
}

// Metrics flattens the evaluation for structured logging.
func (e Evaluation) Metrics() map[string]float64 {
	return map[string]float64{
		"accuracy":  e.Accuracy,
		"precision": e.Precision,
		"recall":    e.Recall,
		"roc_auc":   e.ROCAUC,
	}
}
