package params

import (
	"fmt"
	"strings"
)

// Stage identifies one analysis program of the toolkit.
type Stage string

const (
	StageNgram     Stage = "ngram"
	StageSignature Stage = "signature"
	StagePhon      Stage = "phon"
	StageTrie      Stage = "trie"
	StageManifold  Stage = "manifold"
	// StageAll is the aggregate stage that reads every stage's parameters.
	StageAll Stage = "all"
)

var stageOrder = []Stage{StageNgram, StageSignature, StagePhon, StageTrie, StageManifold, StageAll}

var stageDescriptions = map[Stage]string{
	StageNgram:     "This program extracts word n-grams.",
	StageSignature: "This program computes morphological signatures.",
	StagePhon:      "This program extracts phon n-grams and works on phonotactics.",
	StageTrie:      "This program computes tries and successor/predecessor frequencies.",
	StageManifold:  "This program computes word neighbors.",
	StageAll:       "This program runs every analysis stage.",
}

// Stages returns every stage identifier in canonical order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// ParseStage validates a stage identifier. Surrounding whitespace and case are ignored.
func ParseStage(value string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := stageDescriptions[stage]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, value)
	}
	return stage, nil
}

// Rank reports the position of the stage in canonical order, or -1 when unknown.
func (s Stage) Rank() int {
	for i, candidate := range stageOrder {
		if candidate == s {
			return i
		}
	}
	return -1
}

func (s Stage) String() string {
	return string(s)
}
