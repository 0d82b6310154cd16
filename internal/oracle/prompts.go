package oracle

import (
	"fmt"
	"strings"

	"github.com/jbonatakis/hakim/internal/court"
)

// CaseTemperature rises slowly with progress so later cases vary more.
func CaseTemperature(progress int) float64 {
	if progress < 1 {
		progress = 1
	}
	return 0.8 + float64(progress)*0.005
}

func buildCaseRequest(progress int) Request {
	tier := court.TierFor(progress)
	temp := CaseTemperature(progress)

	var b strings.Builder
	b.WriteString("Bir Ağır Ceza Mahkemesi davası oluştur.\n\n")
	fmt.Fprintf(&b, "ZORLUK SEVİYESİ: %s\n", tier.LevelName())
	fmt.Fprintf(&b, "TALİMAT: %s\n\n", tier.Guidance())
	b.WriteString(`ROLLER:
- "Katılan Vekili" (İddia Makamı): Mağdur adına suçlamayı yapan avukat. Savcı değildir, şikayetçi avukatıdır.
- "Sanık Müdafii": Sanığı savunan avukat.

DİL, İMLA VE TERMİNOLOJİ KURALLARI:
1. Türkçe imla kurallarına tam olarak uy. Cümleler büyük harfle başlar, nokta ile biter.
2. Resmi ve ciddi bir hukuk dili kullan. "Bay/Bayan" yerine "Sayın" kullan.
3. Şu terimleri kullan: "Müvekkil", "İsnat edilen suç", "Maddi hakikat", "Kovuşturma", "Usule aykırılık", "Hukuka uygunluk", "Hayatın olağan akışı", "Mütalaa", "Beraat", "Mahkumiyet", "Katılan".
4. "Jüri" kavramını kullanma. Kararı heyet veya hakim verir.
5. "keyPoints" alanına hakimin karar verirken dikkat etmesi gereken 3-4 kritik nokta veya çelişki ekle.
6. Delil adları ("item") birbirinden farklı olmalı. En az bir tanık bulunmalı.
7. "correctVerdict" yalnızca "Guilty" veya "Not Guilty" olabilir.

FORMAT:
Tüm içeriği tek bir JSON nesnesi olarak ve yalnızca Türkçe oluştur.
Mahkeme jenerik bir mahkemedir; "T.C." yerine "Mahkeme" veya "Heyetimiz" ifadesini kullan.
`)

	return Request{
		Kind:        KindCase,
		Prompt:      b.String(),
		JSON:        true,
		Schema:      caseSchemaJSON,
		Temperature: &temp,
		Hints:       Hints{Progress: progress},
	}
}

func buildCharacterRequest(q CharacterQuery) Request {
	var sys strings.Builder
	sys.WriteString("Sen bir mahkeme simülasyonunda karaktersin.\n")
	fmt.Fprintf(&sys, "Dava: %s\nSuç: %s\n\n", q.Case.Title, q.Case.Crime)
	fmt.Fprintf(&sys, "Rolün: %s (%s).\n", q.Target, q.Role.Title())
	if q.Role == court.RoleWitness {
		if w, ok := q.Case.WitnessByName(q.Target); ok {
			fmt.Fprintf(&sys, "Görevin: %s. İlk beyanın: %s. Tutumun: %s.\n", w.Role, w.Testimony, w.Personality)
		}
	}
	sys.WriteString(`
DİL VE ÜSLUP KURALLARI:
- Türkçe imla ve dil bilgisi kurallarına eksiksiz uy.
- "Bay X" deme, "Sayın X" veya "X Bey" de.

1. KATILAN VEKİLİ: Resmi, teknik ve kararlı konuş. "Sayın Başkan", "Dosya kapsamı incelendiğinde..." gibi ifadeler kullan. Savcı gibi değil, taraf avukatı gibi konuş.
2. SANIK MÜDAFİİ: Koruyucu ve itirazcı konuş. "Sayın Hakim", "Müvekkilimin masumiyeti..." gibi ifadeler kullan.
3. TANIK/SANIK: Hukuki terim bilmezler, doğal konuşurlar ama mahkemeye saygılıdırlar ("Efendim", "Hakim Bey/Hanım").

GÖREV:
Mahkeme Başkanı sana bir soru sordu. Rolüne uygun, kısa ve öz cevap ver (en fazla 3 cümle).
`)
	if q.Evidence != nil {
		fmt.Fprintf(&sys, "\nDİKKAT: Mahkeme Başkanı sana bir delil gösterdi: %q (%s).\n", q.Evidence.Item, q.Evidence.Description)
		sys.WriteString("Bu delil karşısında rolüne uygun tepki ver: inkar et, çürütmeye çalış veya kabul etmek zorunda kal.\n")
	}

	history := q.History
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	lines := make([]string, 0, len(history))
	for _, e := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Role, e.Text))
	}

	verb := "soruyor"
	evidence := ""
	if q.Evidence != nil {
		verb = "delil göstererek soruyor"
		evidence = q.Evidence.Item
	}
	prompt := fmt.Sprintf("(GEÇMİŞ TUTANAK:\n%s)\n\nMAHKEME BAŞKANI %s: %q", strings.Join(lines, "\n"), verb, q.Question)

	return Request{
		Kind:   KindCharacter,
		System: sys.String(),
		Prompt: prompt,
		Hints: Hints{
			Role:     q.Role,
			Target:   q.Target,
			Evidence: evidence,
		},
	}
}

func buildEvaluationRequest(c court.Case, v court.VerdictInput) Request {
	var b strings.Builder
	b.WriteString("Sen bir üst mahkeme (temyiz makamı) olarak görev yapıyorsun.\n\n")
	fmt.Fprintf(&b, "DAVA: %s\n", c.Title)
	fmt.Fprintf(&b, "MADDİ GERÇEK VE HUKUKİ SONUÇ: %s (%s)\n\n", c.CorrectVerdict, c.Reasoning)
	b.WriteString("YEREL MAHKEME HAKİMİNİN KARARI:\n")
	fmt.Fprintf(&b, "%s\n", v.Verdict)
	if strings.TrimSpace(v.Sentence) != "" {
		fmt.Fprintf(&b, "Hüküm: %s\n", v.Sentence)
	}
	fmt.Fprintf(&b, "Gerekçe: %s\n", v.Reasoning)
	b.WriteString(`
GÖREV:
Bu kararı hukuki açıdan değerlendir (temyiz incelemesi).
- Türkçe imla ve dil bilgisi kurallarına eksiksiz uy.
- "Dosya incelendi, gereği düşünüldü..." kalıbıyla başla.
- Kararın usul ve yasaya uygun olup olmadığını, delillerin takdirinde isabet olup olmadığını belirt.
- Sonuç olarak "HÜKMÜN ONANMASINA" veya "HÜKMÜN BOZULMASINA" karar ver.
- "score" 0-100 arası bir tam sayı, "title" hakime verilen unvan olsun.
`)

	return Request{
		Kind:   KindEvaluation,
		Prompt: b.String(),
		JSON:   true,
		Schema: evaluationSchemaJSON,
		Hints: Hints{
			Submitted: v.Verdict,
			Expected:  c.CorrectVerdict,
		},
	}
}
