package catalog

import (
	"encoding/json"
	"testing"
)

func TestFieldsUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Fields
	}{
		{"object keeps key order", `{"Ciclo":"Precoce","Peso":"20kg"}`, Fields{{"Ciclo", "Precoce"}, {"Peso", "20kg"}}},
		{"null yields empty", `null`, nil},
		{"array yields empty", `["a","b"]`, nil},
		{"string yields empty", `"texto"`, nil},
		{"number yields empty", `42`, nil},
		{"non-string values are skipped", `{"Ciclo":"Precoce","Sacas":120,"Irrigado":true,"Peso":"20kg"}`, Fields{{"Ciclo", "Precoce"}, {"Peso", "20kg"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Fields
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(f) != len(tt.want) {
				t.Fatalf("got %v, want %v", f, tt.want)
			}
			for i := range f {
				if f[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", f, tt.want)
				}
			}
		})
	}
}

func TestFieldsMarshal(t *testing.T) {
	f := Fields{{"Ciclo", "Precoce"}, {"Peso", "20kg"}}
	got, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"Ciclo":"Precoce","Peso":"20kg"}`; string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	empty, err := json.Marshal(Fields(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(empty) != "null" {
		t.Fatalf("empty Fields rendered %s, want null", empty)
	}
}
