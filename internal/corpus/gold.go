package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// GoldEntity is one ground-truth annotation inside a training example.
type GoldEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// GoldExample is one labeled text used to train the entity model.
type GoldExample struct {
	ID       string       `json:"id,omitempty"`
	Text     string       `json:"text"`
	Entities []GoldEntity `json:"entities"`
}

// labelRemap folds annotation-tool label variants into the closed label set.
var labelRemap = map[string]string{
	"PER":       LabelCharacter,
	"LOC":       LabelLocation,
	"FAC":       LabelFaction,
	"ORG":       LabelFaction,
	"ART":       LabelArtifact,
	"ITEM":      LabelArtifact,
	"CHARACTER": LabelCharacter,
	"LOCATION":  LabelLocation,
	"FACTION":   LabelFaction,
	"ARTIFACT":  LabelArtifact,
}

// RemapLabel folds a raw annotation label into the closed set. Unknown labels
// come back with ok=false and should be dropped.
func RemapLabel(raw string) (string, bool) {
	label, ok := labelRemap[raw]
	return label, ok
}

// Annotation-tool export schema (Label Studio style).
type studioTask struct {
	Data struct {
		Text string `json:"text"`
	} `json:"data"`
	Annotations []struct {
		Result []struct {
			Value struct {
				Start  int      `json:"start"`
				End    int      `json:"end"`
				Text   string   `json:"text"`
				Labels []string `json:"labels"`
			} `json:"value"`
		} `json:"result"`
	} `json:"annotations"`
}

// ReadGoldJSON loads training examples from either the native schema
// ([{text, entities}]) or an annotation-tool export. The tool export is
// detected by the presence of data.text; its labels go through RemapLabel
// and annotations with no recognized label are dropped.
func ReadGoldJSON(path string) ([]GoldExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var native []GoldExample
	if err := json.Unmarshal(data, &native); err == nil && looksNative(native) {
		return native, nil
	}

	var tasks []studioTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%s is neither a gold label file nor an annotation export: %w", path, err)
	}

	examples := make([]GoldExample, 0, len(tasks))
	for _, task := range tasks {
		text := task.Data.Text
		if text == "" || len(task.Annotations) == 0 {
			continue
		}
		ex := GoldExample{Text: text}
		for _, res := range task.Annotations[0].Result {
			v := res.Value
			if len(v.Labels) == 0 {
				continue
			}
			label, ok := RemapLabel(v.Labels[0])
			if !ok {
				continue
			}
			span := v.Text
			if span == "" && v.Start >= 0 && v.End <= len(text) && v.Start < v.End {
				span = text[v.Start:v.End]
			}
			if span == "" {
				continue
			}
			ex.Entities = append(ex.Entities, GoldEntity{Text: span, Label: label})
		}
		examples = append(examples, ex)
	}
	return examples, nil
}

// WriteGoldJSON writes training examples in the native schema.
func WriteGoldJSON(path string, examples []GoldExample) error {
	data, err := json.MarshalIndent(examples, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal gold labels: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// looksNative reports whether the decoded slice resembles the native schema
// rather than an annotation export decoded into empty structs.
func looksNative(examples []GoldExample) bool {
	for _, ex := range examples {
		if ex.Text != "" {
			return true
		}
	}
	return len(examples) == 0
}
