package bench

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNewTalk(t *testing.T) {
	talk := NewTalk("t", []string{"Hello world.", "How are you?"})

	if talk.RawText != "Hello world. How are you?" {
		t.Errorf("RawText = %q", talk.RawText)
	}
	want := []Sentence{
		{Text: "Hello world.", Start: 0, End: 12},
		{Text: "How are you?", Start: 13, End: 25},
	}
	if len(talk.Sentences) != len(want) {
		t.Fatalf("got %d sentences, want %d", len(talk.Sentences), len(want))
	}
	for i := range want {
		if talk.Sentences[i] != want[i] {
			t.Errorf("sentence[%d] = %+v, want %+v", i, talk.Sentences[i], want[i])
		}
		s := talk.Sentences[i]
		if talk.RawText[s.Start:s.End] != s.Text {
			t.Errorf("sentence[%d] offsets do not match its text", i)
		}
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIDs   []string
		wantTexts []string
		wantEnds  [][]int
	}{
		{
			name:      "single talk",
			input:     "Dr. Smith left.\nShe was tired.\n",
			wantIDs:   []string{"gold"},
			wantTexts: []string{"Dr. Smith left. She was tired."},
			wantEnds:  [][]int{{15, 30}},
		},
		{
			name:      "talks separated by blank lines",
			input:     "# comment\nOne.\nTwo.\n\n\nThree?\n",
			wantIDs:   []string{"gold-1", "gold-2"},
			wantTexts: []string{"One. Two.", "Three?"},
			wantEnds:  [][]int{{4, 9}, {6}},
		},
		{
			name:      "surrounding whitespace trimmed",
			input:     "  Hi there.  \n\tBye.\n",
			wantIDs:   []string{"gold"},
			wantTexts: []string{"Hi there. Bye."},
			wantEnds:  [][]int{{9, 14}},
		},
		{
			name:  "comments only",
			input: "# nothing here\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			talks, err := ParseText("gold", tt.input)
			if err != nil {
				t.Fatalf("ParseText() error = %v", err)
			}
			if len(talks) != len(tt.wantIDs) {
				t.Fatalf("got %d talks, want %d", len(talks), len(tt.wantIDs))
			}
			for i, talk := range talks {
				if talk.ID != tt.wantIDs[i] {
					t.Errorf("talk[%d].ID = %q, want %q", i, talk.ID, tt.wantIDs[i])
				}
				if talk.RawText != tt.wantTexts[i] {
					t.Errorf("talk[%d].RawText = %q, want %q", i, talk.RawText, tt.wantTexts[i])
				}
				if got := talk.Boundaries(); !slices.Equal(got, tt.wantEnds[i]) {
					t.Errorf("talk[%d].Boundaries() = %v, want %v", i, got, tt.wantEnds[i])
				}
			}
		})
	}
}

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "news.txt")
	if err := os.WriteFile(path, []byte("Hello world.\nHow are you?\n"), 0644); err != nil {
		t.Fatal(err)
	}

	talks, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if len(talks) != 1 || talks[0].ID != "news" {
		t.Fatalf("talks = %+v", talks)
	}
	if len(talks[0].Sentences) != 2 {
		t.Errorf("got %d sentences, want 2", len(talks[0].Sentences))
	}

	if _, err := LoadText(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()

	// Two talks in one file, one in another
	files := map[string]string{
		"a.txt": "Hello.\n\nGoodbye.\n",
		"b.txt": "Hi.\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// Annotated corpora are loaded too
	gold := `{"name": "gold", "text": "Hello.", "boundaries": [6]}`
	if err := os.WriteFile(filepath.Join(dir, "gold.json"), []byte(gold), 0644); err != nil {
		t.Fatal(err)
	}

	// Other files are ignored
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Readme"), 0644); err != nil {
		t.Fatal(err)
	}

	talks, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}

	var ids []string
	for _, talk := range talks {
		ids = append(ids, talk.ID)
	}
	if want := []string{"a-1", "a-2", "b", "gold"}; !slices.Equal(ids, want) {
		t.Errorf("talk IDs = %v, want %v", ids, want)
	}
}

func TestLoadGold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dev.json")
	content := `{"name": "dev", "source": "UD_English-EWT", "text": "Hi there. Bye.", "sentences": 2, "boundaries": [9, 14]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	talk, err := LoadGold(path)
	if err != nil {
		t.Fatalf("LoadGold() error = %v", err)
	}
	if talk.ID != "dev" || talk.RawText != "Hi there. Bye." {
		t.Errorf("talk = %+v", talk)
	}
	if got := talk.Boundaries(); len(got) != 2 || got[0] != 9 || got[1] != 14 {
		t.Errorf("Boundaries() = %v, want [9 14]", got)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"text": "Hi.", "boundaries": [40]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGold(bad); err == nil {
		t.Error("expected error for boundary outside text")
	}
}

func TestTalk_Boundaries(t *testing.T) {
	talk := NewTalk("t", []string{"Hello world.", "How are you?"})
	if got := talk.Boundaries(); !slices.Equal(got, []int{12, 25}) {
		t.Errorf("Boundaries() = %v, want [12 25]", got)
	}

	talk.Gold = []int{5}
	if got := talk.Boundaries(); !slices.Equal(got, []int{5}) {
		t.Errorf("Boundaries() = %v, want gold [5]", got)
	}
}
