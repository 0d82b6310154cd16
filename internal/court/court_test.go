package court

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleCase() Case {
	return Case{
		Title:              "Kasten Yaralama Davası",
		DefendantName:      "Ahmet Yılmaz",
		Crime:              "Kasten yaralama (TCK 86)",
		Summary:            "Sanığın bir tartışma sonrası mağduru yaraladığı iddia edilmektedir.",
		ProsecutionOpening: "Sayın Başkan, dosya kapsamı incelendiğinde...",
		DefenseOpening:     "Sayın Hakim, müvekkilimin masumiyeti...",
		Evidence: []Evidence{
			{Item: "Kanlı Bıçak", Description: "Olay yerinde bulunan bıçak."},
			{Item: "Kamera Kaydı", Description: "Sokak kamerası görüntüsü."},
		},
		Witnesses: []Witness{
			{Name: "Ayşe Demir", Role: "Görgü tanığı", Testimony: "Kavgayı gördüm.", Personality: "Tedirgin"},
		},
		KeyPoints:      []string{"Kamera saatinin yanlış olması"},
		CorrectVerdict: Guilty,
		Reasoning:      "Deliller sanığı işaret etmektedir.",
	}
}

func TestTierForBoundaries(t *testing.T) {
	cases := []struct {
		progress int
		want     Tier
	}{
		{-3, TierEasy},
		{1, TierEasy},
		{10, TierEasy},
		{11, TierEasyMedium},
		{20, TierEasyMedium},
		{21, TierMedium},
		{30, TierMedium},
		{31, TierMediumHard},
		{40, TierMediumHard},
		{41, TierHard},
		{500, TierHard},
	}
	for _, tc := range cases {
		if got := TierFor(tc.progress); got != tc.want {
			t.Fatalf("TierFor(%d) = %d, want %d", tc.progress, got, tc.want)
		}
	}
}

func TestTierLabelsDistinct(t *testing.T) {
	seen := map[string]bool{}
	for tier := TierEasy; tier <= TierHard; tier++ {
		label := tier.Label()
		if seen[label] {
			t.Fatalf("duplicate label %q", label)
		}
		seen[label] = true
		if tier.Guidance() == "" || tier.LevelName() == "" {
			t.Fatalf("tier %d missing prompt text", tier)
		}
	}
}

func TestValidateCaseAcceptsWellFormed(t *testing.T) {
	if errs := ValidateCase(sampleCase()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateCaseRejectsDuplicateEvidence(t *testing.T) {
	c := sampleCase()
	c.Evidence = append(c.Evidence, Evidence{Item: "Kanlı Bıçak", Description: "ikinci"})
	errs := ValidateCase(c)
	if len(errs) != 1 || errs[0].Path != "$.evidence[2].item" {
		t.Fatalf("expected duplicate evidence error, got %v", errs)
	}
}

func TestValidateCaseRejectsMissingWitnessesAndVerdict(t *testing.T) {
	c := sampleCase()
	c.Witnesses = nil
	c.CorrectVerdict = "Maybe"
	c.Title = "  "
	errs := ValidateCase(c)
	paths := map[string]bool{}
	for _, e := range errs {
		paths[e.Path] = true
	}
	for _, want := range []string{"$.title", "$.witnesses", "$.correctVerdict"} {
		if !paths[want] {
			t.Fatalf("expected error at %s, got %v", want, errs)
		}
	}
}

func TestVerdictDecodingAcceptsVariants(t *testing.T) {
	for _, raw := range []string{`"Not Guilty"`, `"NotGuilty"`, `"not guilty"`, `"not_guilty"`} {
		var v Verdict
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if v != NotGuilty {
			t.Fatalf("decode %s = %q", raw, v)
		}
	}
	var v Verdict
	if err := json.Unmarshal([]byte(`"innocent-ish"`), &v); err == nil {
		t.Fatalf("expected error for unknown verdict")
	}
}

func TestVerdictInputRequiresSentenceWhenGuilty(t *testing.T) {
	in := VerdictInput{Verdict: Guilty, Reasoning: "gerekçe"}
	if errs := in.Validate(); len(errs) != 1 || errs[0].Path != "$.sentence" {
		t.Fatalf("expected sentence error, got %v", errs)
	}
	in.Sentence = "10 yıl"
	if errs := in.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid input, got %v", errs)
	}
	if errs := NewVerdictInput().Validate(); len(errs) != 0 {
		t.Fatalf("not guilty needs no sentence, got %v", errs)
	}
}

func TestResolveTargetPrecedence(t *testing.T) {
	c := sampleCase()
	cases := []struct {
		target  string
		role    SpeakerRole
		speaker string
	}{
		{"Prosecutor", RoleProsecutor, ProsecutorLabel},
		{ProsecutorLabel, RoleProsecutor, ProsecutorLabel},
		{"Defense", RoleDefense, DefenseLabel},
		{"defense", RoleDefense, DefenseLabel},
		{DefenseLabel, RoleDefense, DefenseLabel},
		{"Ahmet Yılmaz", RoleDefendant, "Ahmet Yılmaz"},
		{"Ayşe Demir", RoleWitness, "Ayşe Demir"},
		{"Bilinmeyen Kişi", RoleWitness, "Bilinmeyen Kişi"},
	}
	for _, tc := range cases {
		role, speaker := ResolveTarget(c, tc.target)
		if role != tc.role || speaker != tc.speaker {
			t.Fatalf("ResolveTarget(%q) = (%s, %q), want (%s, %q)", tc.target, role, speaker, tc.role, tc.speaker)
		}
	}

	// A defendant who happens to share a label still resolves to the label's role.
	c.DefendantName = DefenseLabel
	if role, _ := ResolveTarget(c, DefenseLabel); role != RoleDefense {
		t.Fatalf("expected defense precedence over defendant, got %s", role)
	}
}

func TestTargetsOrder(t *testing.T) {
	got := Targets(sampleCase())
	want := []string{ProsecutorLabel, DefenseLabel, "Ahmet Yılmaz", "Ayşe Demir"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("Targets = %v, want %v", got, want)
	}
}

func TestTranscriptAppendIsMonotonic(t *testing.T) {
	var tr Transcript
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	tr.Append(Entry{ID: "a", Role: RoleJudge, Text: "1", Timestamp: base})
	tr.Append(Entry{ID: "b", Role: RoleWitness, Text: "2", Timestamp: base.Add(-time.Minute)})
	tr.Append(Entry{ID: "c", Role: RoleWitness, Text: "3", Timestamp: base.Add(time.Second)})

	entries := tr.Entries()
	for i := 0; i+1 < len(entries); i++ {
		if entries[i+1].Timestamp.Before(entries[i].Timestamp) {
			t.Fatalf("entry %d before entry %d", i+1, i)
		}
	}

	// Mutating the returned copy must not affect the transcript.
	entries[0].Text = "changed"
	if first := tr.Entries()[0]; first.Text != "1" {
		t.Fatalf("transcript entry mutated through copy: %q", first.Text)
	}
}

func TestTranscriptRecent(t *testing.T) {
	var tr Transcript
	for _, id := range []string{"a", "b", "c", "d"} {
		tr.Append(Entry{ID: id, Timestamp: time.Now()})
	}
	recent := tr.Recent(3)
	if len(recent) != 3 || recent[0].ID != "b" || recent[2].ID != "d" {
		t.Fatalf("unexpected recent entries %#v", recent)
	}
	if got := tr.Recent(10); len(got) != 4 {
		t.Fatalf("expected all 4 entries, got %d", len(got))
	}
	if got := tr.Recent(0); got != nil {
		t.Fatalf("expected nil for n=0, got %#v", got)
	}
}

func TestTranscriptJSONRoundTrip(t *testing.T) {
	var tr Transcript
	ts := time.Date(2026, 3, 4, 5, 6, 7, 891011121, time.FixedZone("TRT", 3*60*60))
	tr.Append(Entry{ID: "x", Role: RoleDefense, Speaker: DefenseLabel, Text: "İtiraz ediyorum.", Timestamp: ts})

	b, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Transcript
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, _ := back.Last()
	if !got.Timestamp.Equal(ts) || got.Role != RoleDefense || got.Text != "İtiraz ediyorum." {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestTranscriptUnmarshalRejectsBadTimestamp(t *testing.T) {
	var tr Transcript
	err := json.Unmarshal([]byte(`[{"id":"a","role":"Judge","speakerName":"x","text":"y","timestamp":"yesterday"}]`), &tr)
	if err == nil {
		t.Fatalf("expected error for unparsable timestamp")
	}
	if err := json.Unmarshal([]byte(`null`), &tr); err == nil {
		t.Fatalf("expected error for null transcript")
	}
}
