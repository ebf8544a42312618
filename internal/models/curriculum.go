package models

// Topic is one curriculum unit (Lernfeld) of the Hamburg GPA Bildungsplan.
type Topic struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// SkillArea is a sub-dimension of a topic used to target weak spots.
type SkillArea struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Topics lists the ten Lernfelder in curriculum order.
var Topics = []Topic{
	{"LF1", "Sich im Berufsfeld orientieren"},
	{"LF2", "Gesundheit erhalten und fördern"},
	{"LF3", "Häusliche Pflege und hauswirtschaftliche Abläufe mitgestalten"},
	{"LF4", "Bei der Körperpflege anleiten und unterstützen"},
	{"LF5", "Menschen bei der Nahrungsaufnahme und Ausscheidung anleiten und unterstützen"},
	{"LF6", "Die Mobilität erhalten und fördern"},
	{"LF7", "Menschen bei der Bewältigung von Krisen unterstützen"},
	{"LF8", "Menschen in besonderen Lebenssituationen unterstützen"},
	{"LF9", "Menschen mit körperlichen und geistigen Beeinträchtigungen unterstützen"},
	{"LF10", "Menschen in der Endphase des Lebens begleiten und pflegen"},
}

// TopicAreas maps a topic code to its diagnosable skill areas.
var TopicAreas = map[string][]SkillArea{
	"LF1": {
		{"rolle_team", "Rolle, Team, Kommunikation"},
		{"recht_ethik", "Recht, Schweigepflicht, Ethik"},
		{"hygiene_sicherheit", "Arbeitsschutz, Hygiene-Basics"},
	},
	"LF2": {
		{"gesundheit_praevention", "Gesundheit, Prävention, Gesundheitsförderung"},
		{"vitalzeichen", "Vitalzeichen & Beobachtung"},
		{"infekt_prophylaxe", "Infektionszeichen & Prophylaxen"},
	},
	"LF3": {
		{"haushalt_org", "Arbeitsorganisation & Haushaltsführung"},
		{"lebensmittelhygiene", "Lebensmittelhygiene & Desinfektion"},
		{"umwelt_wirtschaft", "Wirtschaftlichkeit & Umweltschutz"},
	},
	"LF4": {
		{"haut_grundlagen", "Haut: Anatomie/Beobachtung"},
		{"koerperpflege", "Körperpflege: Durchführung/Anleitung"},
		{"prophylaxen", "Dekubitus/Intertrigo: Risiken & Prophylaxe"},
		{"sinnesorgane", "Augen/Ohren: Pflege & Hilfsmittel"},
		{"doku_pflegeprozess", "Pflegeprozess & Dokumentation"},
	},
	"LF5": {
		{"ernaehrung", "Ernährung, Essenreichen, Atmosphäre"},
		{"fluessigkeit_bilanz", "Flüssigkeit, Bilanzierung, Dehydration"},
		{"schluckstoerung_sonde", "Schluckstörung & Nahrungssonde"},
		{"ausscheidung", "Ausscheidung & Inkontinenz"},
		{"prophylaxen", "Soor/Parotitis/Obstipation: Prophylaxen"},
	},
	"LF6": {
		{"bewegungsapparat", "Bewegungsapparat: Grundlagen"},
		{"mobilisation_transfer", "Mobilisation, Lagerung, Transfer (Ergonomie)"},
		{"sturzrisiko", "Sturzrisiko: Einschätzung & Prävention"},
		{"prophylaxen", "Kontrakturen-/Thrombose-/Pneumonieprophylaxe"},
		{"beispiele", "Beispielhafte Krankheitsbilder (z.B. Arthrose/TEP)"},
	},
	"LF7": {
		{"herz_kreislauf", "Herz-Kreislauf: Grundlagen"},
		{"notfallbilder", "Akute Notfälle (z.B. Herzinfarkt, hypertensive Krise)"},
		{"thrombose_embolie", "Thrombose/Embolie: Zeichen & Maßnahmen"},
		{"schmerz", "Schmerz: Beobachtung, Dokumentation, nicht-medikamentös"},
		{"wunden_injektion", "Wunden/Wundheilung & s.c. Injektion (Heparin/Insulin)"},
	},
	"LF8": {
		{"chronisch", "Chronische Erkrankungen & Umgang"},
		{"diabetes", "Diabetes: Beobachtung, BZ, Insulin (unter Anleitung)"},
		{"herzinsuff", "Herzinsuffizienz: Symptome, Beobachtung, Alltag"},
		{"medikamente", "Medikamente: Wirkung/Nebenwirkung beobachten"},
	},
	"LF9": {
		{"beeintraechtigung", "Beeinträchtigungen: Ressourcen & Aktivierung"},
		{"demenz_kommunikation", "Demenz & Kommunikation (Validation, Basale Stimulation)"},
		{"hilfsmittel", "Hilfsmittel & rehabilitative Unterstützung"},
	},
	"LF10": {
		{"palliativ", "Palliative Grundhaltung & Bedürfnisse"},
		{"zeichen_sterben", "Zeichen des nahenden Todes & Beobachtung"},
		{"angehoerige", "Angehörige begleiten & Kommunikation"},
		{"nach_tod", "Maßnahmen nach Eintritt des Todes (Rollenklarheit)"},
	},
}

// IsTopic reports whether code names a known Lernfeld.
func IsTopic(code string) bool {
	_, ok := TopicAreas[code]
	return ok
}

// IsSkillArea reports whether area belongs to the given topic.
func IsSkillArea(topic, area string) bool {
	for _, a := range TopicAreas[topic] {
		if a.Key == area {
			return true
		}
	}
	return false
}
