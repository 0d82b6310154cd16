package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbonatakis/hakim/internal/config"
	"github.com/jbonatakis/hakim/internal/court"
)

func fixtureCase(t *testing.T) court.Case {
	t.Helper()
	f, err := DefaultFixture()
	require.NoError(t, err)
	return f.set.Cases[0]
}

func caseJSON(t *testing.T, c court.Case) string {
	t.Helper()
	b, err := json.Marshal(c)
	require.NoError(t, err)
	return string(b)
}

func replying(output string, err error) Generator {
	return GeneratorFunc(func(context.Context, Request) (string, error) {
		return output, err
	})
}

func TestGenerateCaseAcceptsWrappedOutput(t *testing.T) {
	c := fixtureCase(t)
	outputs := map[string]string{
		"bare":   caseJSON(t, c),
		"fenced": "İşte dava:\n```json\n" + caseJSON(t, c) + "\n```\n",
		"prose":  "Dava dosyası: " + caseJSON(t, c) + " iyi çalışmalar.",
	}
	for name, out := range outputs {
		t.Run(name, func(t *testing.T) {
			got, err := NewService(replying(out, nil), nil).GenerateCase(context.Background(), 3)
			require.NoError(t, err)
			assert.Equal(t, c.Title, got.Title)
			assert.Equal(t, c.CorrectVerdict, got.CorrectVerdict)
			assert.Len(t, got.Witnesses, len(c.Witnesses))
		})
	}
}

func TestGenerateCaseRequestCarriesTierAndTemperature(t *testing.T) {
	var seen Request
	gen := GeneratorFunc(func(_ context.Context, req Request) (string, error) {
		seen = req
		return caseJSON(t, fixtureCase(t)), nil
	})
	_, err := NewService(gen, nil).GenerateCase(context.Background(), 25)
	require.NoError(t, err)

	assert.Equal(t, KindCase, seen.Kind)
	assert.True(t, seen.JSON)
	assert.Equal(t, 25, seen.Hints.Progress)
	require.NotNil(t, seen.Temperature)
	assert.InDelta(t, 0.925, *seen.Temperature, 1e-9)
	assert.Contains(t, seen.Prompt, court.TierMedium.LevelName())
	assert.Contains(t, seen.Prompt, court.TierMedium.Guidance())
}

func TestGenerateCaseFailsHard(t *testing.T) {
	valid := fixtureCase(t)
	noWitnesses := valid
	noWitnesses.Witnesses = []court.Witness{}
	dupEvidence := valid
	dupEvidence.Evidence = append([]court.Evidence{}, valid.Evidence...)
	dupEvidence.Evidence = append(dupEvidence.Evidence, valid.Evidence[0])
	badVerdict := strings.Replace(caseJSON(t, valid), `"correctVerdict":"Guilty"`, `"correctVerdict":"Perhaps"`, 1)
	missingField := strings.Replace(caseJSON(t, valid), `"reasoning":`, `"rationale":`, 1)

	cases := []struct {
		name  string
		gen   Generator
		stage Stage
	}{
		{"transport", replying("", errors.New("connection reset")), StageRequest},
		{"no json", replying("Üzgünüm, yardımcı olamam.", nil), StageExtract},
		{"two objects", replying(`{"a":1} ve {"b":2}`, nil), StageExtract},
		{"missing field", replying(missingField, nil), StageSchema},
		{"no witnesses", replying(caseJSON(t, noWitnesses), nil), StageSchema},
		{"bad verdict", replying(badVerdict, nil), StageDecode},
		{"duplicate evidence", replying(caseJSON(t, dupEvidence), nil), StageValidate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewService(tc.gen, nil).GenerateCase(context.Background(), 1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGeneration))
			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, tc.stage, genErr.Stage)
			assert.Equal(t, court.Case{}, got, "no partial case")
		})
	}
}

func TestAskCharacterFallbacks(t *testing.T) {
	q := CharacterQuery{Case: fixtureCase(t), Role: court.RoleDefense, Target: court.DefenseLabel, Question: "Müvekkiliniz nerede?"}
	panicking := GeneratorFunc(func(context.Context, Request) (string, error) { panic("boom") })

	cases := []struct {
		name string
		gen  Generator
		want string
	}{
		{"reply", replying("  Sayın Hakim, evdeydi.\n", nil), "Sayın Hakim, evdeydi."},
		{"empty", replying("   ", nil), EmptyReply},
		{"error", replying("", errors.New("quota")), FallbackReply},
		{"panic", panicking, FallbackReply},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewService(tc.gen, nil).AskCharacter(context.Background(), q))
		})
	}
}

func TestCharacterRequestUsesRecentHistoryAndEvidence(t *testing.T) {
	c := fixtureCase(t)
	var history []court.Entry
	for _, text := range []string{"bir", "iki", "üç", "dört"} {
		history = append(history, court.Entry{Role: court.RoleWitness, Text: text})
	}
	ev := c.Evidence[0]
	req := buildCharacterRequest(CharacterQuery{
		Case: c, Role: court.RoleWitness, Target: c.Witnesses[0].Name,
		History: history, Question: "Bunu tanıyor musunuz?", Evidence: &ev,
	})

	assert.NotContains(t, req.Prompt, "Witness: bir")
	assert.Contains(t, req.Prompt, "Witness: iki\nWitness: üç\nWitness: dört")
	assert.Contains(t, req.Prompt, "delil göstererek")
	assert.Contains(t, req.System, ev.Item)
	assert.Contains(t, req.System, c.Witnesses[0].Testimony)
	assert.Equal(t, ev.Item, req.Hints.Evidence)
	assert.False(t, req.JSON)
}

func TestEvaluateVerdict(t *testing.T) {
	c := fixtureCase(t)
	in := court.VerdictInput{Verdict: court.Guilty, Sentence: "10 yıl", Reasoning: "Deliller yeterli."}

	cases := []struct {
		name string
		out  string
		err  error
		want court.Evaluation
	}{
		{"ok", `{"score": 91, "feedback": "Onandı.", "title": "Usta Hakim"}`, nil, court.Evaluation{Score: 91, Feedback: "Onandı.", Title: "Usta Hakim"}},
		{"float score", `{"score": 72.6, "feedback": "f", "title": "t"}`, nil, court.Evaluation{Score: 73, Feedback: "f", Title: "t"}},
		{"clamped high", `{"score": 140, "feedback": "f", "title": "t"}`, nil, court.Evaluation{Score: 100, Feedback: "f", Title: "t"}},
		{"clamped low", `{"score": -5, "feedback": "f", "title": "t"}`, nil, court.Evaluation{Score: 0, Feedback: "f", Title: "t"}},
		{"missing title", `{"score": 80, "feedback": "f"}`, nil, FallbackEvaluation()},
		{"garbage", `not json at all`, nil, FallbackEvaluation()},
		{"error", "", errors.New("timeout"), FallbackEvaluation()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewService(replying(tc.out, tc.err), nil).EvaluateVerdict(context.Background(), c, in)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
		})
	}
}

func TestEvaluationPromptIncludesSentence(t *testing.T) {
	req := buildEvaluationRequest(fixtureCase(t), court.VerdictInput{Verdict: court.Guilty, Sentence: "10 yıl", Reasoning: "r"})
	assert.Contains(t, req.Prompt, "Hüküm: 10 yıl")
	assert.Equal(t, court.Guilty, req.Hints.Submitted)
}

func TestFixtureGenerator(t *testing.T) {
	f, err := DefaultFixture()
	require.NoError(t, err)
	svc := NewService(f, nil)
	ctx := context.Background()

	first, err := svc.GenerateCase(ctx, 1)
	require.NoError(t, err)
	second, err := svc.GenerateCase(ctx, 2)
	require.NoError(t, err)
	third, err := svc.GenerateCase(ctx, 3)
	require.NoError(t, err)
	assert.NotEqual(t, first.Title, second.Title)
	assert.Equal(t, first.Title, third.Title)

	q := CharacterQuery{Case: first, Role: court.RoleProsecutor, Target: court.ProsecutorLabel, Question: "?"}
	r1 := svc.AskCharacter(ctx, q)
	r2 := svc.AskCharacter(ctx, q)
	assert.NotEqual(t, r1, r2, "replies rotate")
	assert.NotEqual(t, FallbackReply, r1)

	right := svc.EvaluateVerdict(ctx, first, court.VerdictInput{Verdict: first.CorrectVerdict, Reasoning: "r"})
	wrong := svc.EvaluateVerdict(ctx, first, court.VerdictInput{Verdict: court.NotGuilty, Reasoning: "r"})
	assert.Greater(t, right.Score, wrong.Score)
}

func TestParseFixtureRejectsEmpty(t *testing.T) {
	_, err := ParseFixture([]byte("replies: {}\n"))
	require.Error(t, err)
	_, err = ParseFixture([]byte("cases: [\n"))
	require.Error(t, err)
}

func TestCommandGenerator(t *testing.T) {
	gen, err := NewShellCommand(`cat >/dev/null; printf '%s' '{"score": 64, "feedback": "f", "title": "t"}'`, 0)
	require.NoError(t, err)
	got := NewService(gen, nil).EvaluateVerdict(context.Background(), fixtureCase(t), court.NewVerdictInput())
	assert.Equal(t, 64, got.Score)

	failing, err := NewShellCommand("echo nope >&2; exit 3", 0)
	require.NoError(t, err)
	_, err = failing.Generate(context.Background(), Request{Kind: KindCharacter})
	var cmdErr CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Contains(t, cmdErr.Diag.Stderr, "nope")

	_, err = NewShellCommand("  ", 0)
	require.Error(t, err)
}

func TestNewGenerator(t *testing.T) {
	gen, err := NewGenerator(context.Background(), config.Runtime{Oracle: config.OracleFixture})
	require.NoError(t, err)
	assert.IsType(t, &Fixture{}, gen)

	_, err = NewGenerator(context.Background(), config.Runtime{Oracle: config.OracleGemini})
	require.Error(t, err, "gemini needs a key")
	gen, err = NewGenerator(context.Background(), config.Runtime{Oracle: config.OracleGemini, APIKey: "test-key"})
	require.NoError(t, err)
	require.IsType(t, &Gemini{}, gen)
	assert.Equal(t, "gemini-2.5-flash", gen.(*Gemini).Model())

	_, err = NewGenerator(context.Background(), config.Runtime{Oracle: "ouija"})
	require.Error(t, err)
}

func TestExtractObject(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr error
	}{
		{`{"a":"}"}`, `{"a":"}"}`, nil},
		{"x ```json\n{\"a\":1}\n``` y", `{"a":1}`, nil},
		{"```json\n{\"a\":1}\n```\n```json\n{\"b\":1}\n```", "", ErrMultipleJSONFound},
		{`önce {"a":"\"{"} sonra`, `{"a":"\"{"}`, nil},
		{`Tanık "yalan söylüyor dedi: {"a":1}`, `{"a":1}`, nil},
		{`"Sanık" ve "müdafi" {"a":"b"} ile "son`, `{"a":"b"}`, nil},
		{"hiç yok", "", ErrNoJSONFound},
	}
	for _, tc := range cases {
		got, err := extractObject(tc.in)
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}
