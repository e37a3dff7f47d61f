package scoring

// Level2Threshold is the minimum pass probability for the technical round.
const Level2Threshold = 0.5

// GradeTechnical computes a pass probability from a structured correctness
// map. An entry is gradable only when its value is itself a map carrying a
// "correct" field; anything else is silently ignored. With no gradable
// entries the round fails softly.
func GradeTechnical(answers map[string]interface{}) TechnicalResult {
	if len(answers) == 0 {
		return TechnicalResult{Pass: false, ProbPass: 0.0, Reason: "No answers"}
	}

	total, correct := 0, 0
	for _, v := range answers {
		entry, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		flag, ok := entry["correct"]
		if !ok {
			continue
		}
		total++
		if truthy(flag) {
			correct++
		}
	}

	if total == 0 {
		return TechnicalResult{Pass: false, ProbPass: 0.0, Reason: "Malformed input"}
	}

	prob := float64(correct) / float64(total)
	if prob >= Level2Threshold {
		return TechnicalResult{Pass: true, ProbPass: round3(prob), Reason: "OK"}
	}
	return TechnicalResult{Pass: false, ProbPass: round3(prob), Reason: "Weak technical fundamentals"}
}

// truthy interprets loosely typed correctness flags: JSON clients may send
// a bool, a numeric flag, or a string.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}
