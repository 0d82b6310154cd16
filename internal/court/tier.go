package court

// Tier is one of five difficulty bands keyed by the progress counter.
type Tier int

const (
	TierEasy Tier = iota + 1
	TierEasyMedium
	TierMedium
	TierMediumHard
	TierHard
)

// TierFor maps a 1-based progress index to its tier. Values below 1 count as 1.
func TierFor(progress int) Tier {
	switch {
	case progress <= 10:
		return TierEasy
	case progress <= 20:
		return TierEasyMedium
	case progress <= 30:
		return TierMedium
	case progress <= 40:
		return TierMediumHard
	default:
		return TierHard
	}
}

// Label is the short difficulty label shown next to the case number.
func (t Tier) Label() string {
	switch t {
	case TierEasy:
		return "KOLAY"
	case TierEasyMedium:
		return "KOLAY-ORTA"
	case TierMedium:
		return "ORTA"
	case TierMediumHard:
		return "ORTA-ZOR"
	default:
		return "ZOR"
	}
}

// LevelName is the level description given to the generator.
func (t Tier) LevelName() string {
	switch t {
	case TierEasy:
		return "KOLAY (Başlangıç)"
	case TierEasyMedium:
		return "KOLAY-ORTA"
	case TierMedium:
		return "ORTA"
	case TierMediumHard:
		return "ORTA-ZOR"
	default:
		return "ZOR (Uzman)"
	}
}

// Guidance is the narrative-complexity instruction for the tier.
func (t Tier) Guidance() string {
	switch t {
	case TierEasy:
		return "Maddi deliller açık ve net olsun. Tanık beyanları tutarlı olsun. Failin kimliği konusunda şüphe bulunmasın. Karar vermek nispeten kolay olsun."
	case TierEasyMedium:
		return "Olayda cüzi şüpheler bulunsun. Bir tanık yanılgı içinde olabilir. Dolaylı deliller (indicia) ağırlıkta olsun."
	case TierMedium:
		return "Çelişkili tanık ifadeleri olsun. Sanığın güçlü bir mazereti (alibi) bulunsun ancak maddi bulgular onu işaret etsin. Şüpheden sanık yararlanır ilkesi sınırlarında gezinsin."
	case TierMediumHard:
		return "Tanıklar yalan beyanda bulunuyor olabilir (yalancı tanıklık). Deliller manipüle edilmiş olabilir. Vicdani kanaat oluşturmak zor olsun."
	default:
		return "Tam bir hukuki kördüğüm (muamma). Tüm deliller birbiriyle çelişsin. Maddi gerçek ancak çok dikkatli bir çapraz sorgu ile ortaya çıksın."
	}
}
