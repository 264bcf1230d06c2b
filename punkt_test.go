package punkt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/jamesainslie/go-punkt/corpus"
	"github.com/jamesainslie/go-punkt/model"
)

var testCorpus = []string{
	"Dr. Smith arrived at the clinic early. The patients waited for Dr. Jones in the hall.",
	"The economy of the U.S. grew last year. Many firms in the U.S. hired new staff.",
	"She met Dr. Brown at noon. They talked about the weather and the news.",
	"Prices rose in the U.S. market again. Analysts expected a slowdown soon.",
	"The report was long. It covered trade and the budget. Nobody read the whole thing.",
	"Dr. Green wrote the summary. The board approved the plan in the U.S. office.",
}

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

var (
	trainOnce  sync.Once
	trainedErr error
	trained    *model.Model
)

// testModel trains on testCorpus once per test binary.
func testModel(t *testing.T) *model.Model {
	t.Helper()
	trainOnce.Do(func() {
		trained, trainedErr = Train(context.Background(), slices.Values(testCorpus), quiet, WithWorkers(2))
	})
	if trainedErr != nil {
		t.Fatalf("Train() failed: %v", trainedErr)
	}
	return trained
}

func newTestSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	seg, err := NewFromModel(testModel(t), quiet)
	if err != nil {
		t.Fatalf("NewFromModel() failed: %v", err)
	}
	return seg
}

// writeModel saves m to a temporary file and returns its path.
func writeModel(t *testing.T, m *model.Model) string {
	t.Helper()
	blob, err := model.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.punkt")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("writing model: %v", err)
	}
	return path
}

func TestTrain(t *testing.T) {
	m := testModel(t)

	for _, typ := range []string{"dr", "u.s"} {
		if !m.IsAbbreviation(typ) {
			t.Errorf("expected %q to be learned as an abbreviation", typ)
		}
	}
	if m.IsAbbreviation("early") {
		t.Error("expected \"early\" not to be an abbreviation")
	}
}

func TestTrain_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Train(ctx, slices.Values(testCorpus), quiet)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestTrainReader(t *testing.T) {
	m, err := TrainReader(context.Background(), corpus.Strings(testCorpus), quiet, WithWorkers(1))
	if err != nil {
		t.Fatalf("TrainReader() failed: %v", err)
	}
	if !m.Equal(testModel(t)) {
		t.Error("expected TrainReader to learn the same model as Train")
	}
}

func TestTrainReader_InvalidInput(t *testing.T) {
	_, err := TrainReader(context.Background(), corpus.Strings{"bad \xff"}, quiet)
	if !errors.Is(err, ErrInput) {
		t.Errorf("expected ErrInput, got: %v", err)
	}
}

func TestNew(t *testing.T) {
	path := writeModel(t, testModel(t))

	seg, err := New(path, quiet)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if !seg.Model().Equal(testModel(t)) {
		t.Error("expected loaded model to equal the saved one")
	}
}

func TestNew_ModelNotFound(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.punkt"))
	if err == nil {
		t.Fatal("expected error for missing model")
	}
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got: %v", err)
	}
}

func TestNew_InvalidModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.punkt")
	if err := os.WriteFile(path, []byte("not a model"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(path)
	if !errors.Is(err, ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel, got: %v", err)
	}
	if !errors.Is(err, ErrModelFormat) {
		t.Errorf("expected ErrModelFormat to be wrapped, got: %v", err)
	}
}

func TestNewFromModel_NotTrained(t *testing.T) {
	if _, err := NewFromModel(nil); !errors.Is(err, ErrModelNotTrained) {
		t.Errorf("expected ErrModelNotTrained for nil model, got: %v", err)
	}
	if _, err := NewFromModel(&model.Model{}); !errors.Is(err, ErrModelNotTrained) {
		t.Errorf("expected ErrModelNotTrained for zero model, got: %v", err)
	}
}

func TestSegmenter_Segment(t *testing.T) {
	seg := newTestSegmenter(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace", "  \n ", nil},
		{"single", "Hello world.", []string{"Hello world."}},
		{"multiple", "Hello world. How are you? I am fine.",
			[]string{"Hello world.", "How are you?", "I am fine."}},
		{"abbreviations", "Dr. Smith lives in the U.S. now. He likes it.",
			[]string{"Dr. Smith lives in the U.S. now.", "He likes it."}},
		{"quote closes sentence", `He said "stop." Then he left.`,
			[]string{`He said "stop."`, "Then he left."}},
		{"no final period", "It was late. We went home",
			[]string{"It was late.", "We went home"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := seg.Segment(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Segment failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Segment(%q)\n got: %q\nwant: %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSegmenter_Segment_ContextCancelled(t *testing.T) {
	seg := newTestSegmenter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seg.Segment(ctx, "Hello world.")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestSegmenter_Segment_InvalidUTF8(t *testing.T) {
	seg := newTestSegmenter(t)

	_, err := seg.Segment(context.Background(), "Hello \xff world.")
	if !errors.Is(err, ErrInput) {
		t.Errorf("expected ErrInput, got: %v", err)
	}
}

func TestSegmenter_SegmentSpans_TileText(t *testing.T) {
	seg := newTestSegmenter(t)
	text := "  The report was long.  It covered trade.\n\nNobody read it. "

	spans, err := seg.SegmentSpans(context.Background(), text)
	if err != nil {
		t.Fatalf("SegmentSpans failed: %v", err)
	}

	var joined string
	prev := 0
	for _, sp := range spans {
		if sp.Start != prev {
			t.Errorf("span %+v does not start at %d", sp, prev)
		}
		if text[sp.Start:sp.End] != sp.Text {
			t.Errorf("span %+v text does not match offsets", sp)
		}
		joined += sp.Text
		prev = sp.End
	}
	if joined != text {
		t.Errorf("spans do not reproduce text: %q", joined)
	}
	if len(spans) != 3 {
		t.Errorf("expected 3 spans, got %d: %+v", len(spans), spans)
	}
}

func TestSegmenter_SegmentWithBoundaries(t *testing.T) {
	seg := newTestSegmenter(t)

	sentences, boundaries, err := seg.SegmentWithBoundaries(context.Background(), "One. Two.")
	if err != nil {
		t.Fatalf("SegmentWithBoundaries failed: %v", err)
	}
	if want := []string{"One.", "Two."}; !slices.Equal(sentences, want) {
		t.Errorf("sentences = %q, want %q", sentences, want)
	}
	if want := []int{4, 9}; !slices.Equal(boundaries, want) {
		t.Errorf("boundaries = %v, want %v", boundaries, want)
	}
}

func TestSegmenter_IsComplete(t *testing.T) {
	seg := newTestSegmenter(t)

	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"Hello world.", true},
		{"Hello world", false},
		{"Is it done?", true},
		{"I went to see Dr.", false},
		{`He said "stop."`, true},
		{"(See the note.)", true},
	}
	for _, tt := range tests {
		got, err := seg.IsComplete(context.Background(), tt.text)
		if err != nil {
			t.Fatalf("IsComplete(%q) failed: %v", tt.text, err)
		}
		if got != tt.want {
			t.Errorf("IsComplete(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSegmenter_IsComplete_ContextCancelled(t *testing.T) {
	seg := newTestSegmenter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := seg.IsComplete(ctx, "Hello world."); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestSegmenter_Explain(t *testing.T) {
	seg := newTestSegmenter(t)

	decisions, err := seg.Explain(context.Background(), "Dr. Smith left. Why?")
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}

	var got []string
	for _, d := range decisions {
		got = append(got, d.Token.Text)
	}
	if want := []string{"Dr.", "left.", "?"}; !slices.Equal(got, want) {
		t.Fatalf("decision tokens = %q, want %q", got, want)
	}
	if decisions[0].Break {
		t.Error("expected no break after Dr.")
	}
	if !decisions[1].Break || !decisions[2].Break {
		t.Error("expected breaks after left. and ?")
	}

	if _, err := seg.Explain(context.Background(), "\xff"); !errors.Is(err, ErrInput) {
		t.Errorf("expected ErrInput, got: %v", err)
	}
}

func TestSegmenter_TokenizeText(t *testing.T) {
	seg := newTestSegmenter(t)

	got, err := seg.TokenizeText(context.Background(), "Hello world. How are you?")
	if err != nil {
		t.Fatalf("TokenizeText failed: %v", err)
	}
	want := []string{"Hello", "world", ".", "How", "are", "you", "?"}
	if !slices.Equal(got, want) {
		t.Errorf("TokenizeText\n got: %q\nwant: %q", got, want)
	}
}

func TestSegmenter_SpanTokenizeText(t *testing.T) {
	seg := newTestSegmenter(t)
	text := "Dr. Smith left. She can't stay."

	spans, err := seg.SpanTokenizeText(context.Background(), text)
	if err != nil {
		t.Fatalf("SpanTokenizeText failed: %v", err)
	}
	for _, sp := range spans {
		if text[sp.Start:sp.End] != sp.Text {
			t.Errorf("span %+v does not match text %q", sp, text[sp.Start:sp.End])
		}
	}

	var words []string
	for _, sp := range spans {
		words = append(words, sp.Form)
	}
	want := []string{"Dr.", "Smith", "left", ".", "She", "ca", "n't", "stay", "."}
	if !slices.Equal(words, want) {
		t.Errorf("words\n got: %q\nwant: %q", words, want)
	}
}

func TestSegmenter_TokenizeWords(t *testing.T) {
	seg := newTestSegmenter(t)

	got := seg.TokenizeWords(`"Hi," she said.`)
	want := []string{"``", "Hi", ",", "''", "she", "said", "."}
	if !slices.Equal(got, want) {
		t.Errorf("TokenizeWords\n got: %q\nwant: %q", got, want)
	}
}

func TestSegmenter_SavedModelDecidesTheSame(t *testing.T) {
	mem := newTestSegmenter(t)
	disk, err := New(writeModel(t, testModel(t)), quiet)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	texts := []string{
		"Dr. Brown met the U.S. team. It went well.",
		"Prices rose again... Nobody expected it.",
		"The end.",
	}
	for _, text := range texts {
		want, err := mem.Segment(context.Background(), text)
		if err != nil {
			t.Fatal(err)
		}
		got, err := disk.Segment(context.Background(), text)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("Segment(%q) after reload\n got: %q\nwant: %q", text, got, want)
		}
	}
}

func TestSegmenter_ConcurrentUse(t *testing.T) {
	seg := newTestSegmenter(t)
	text := "Dr. Smith lives in the U.S. now. He likes it."

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := seg.Segment(context.Background(), text)
			if err != nil {
				errs <- err
				return
			}
			if len(got) != 2 {
				errs <- errors.New("unexpected sentence count")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
