package report

// Locale carries the display strings for the workbook. The language is an
// explicit parameter of the renderer; nothing here touches process-wide
// locale state.
type Locale struct {
	Title           string
	CapacityBanner  string // fmt string taking the capacity figure
	CircuitsHeader  string
	CompilationHead string

	Months   [12]string
	Weekdays [7]string // indexed by time.Weekday, Sunday first

	LabelTestsRequested string
	LabelTestsPerformed string
	LabelReportsIssued  string
	LabelReportsOnTime  string
	LabelAvailableDays  string
	LabelOperatingDays  string
	LabelAvailability   string
	LabelPerformance    string
	LabelQuality        string
	LabelOEE            string
}

// PtBR is the lab's default reporting language.
var PtBR = Locale{
	Title:           "Controle de OEE - Laboratório",
	CapacityBanner:  "Capacidade de utilização: %d circuitos",
	CircuitsHeader:  "Circuitos",
	CompilationHead: "Compilação",

	Months: [12]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	},
	Weekdays: [7]string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"},

	LabelTestsRequested: "Ensaios Solicitados",
	LabelTestsPerformed: "Ensaios Executados",
	LabelReportsIssued:  "Relatórios Emitidos",
	LabelReportsOnTime:  "Relatórios no Prazo",
	LabelAvailableDays:  "Tempo Disponível (dias)",
	LabelOperatingDays:  "Tempo Real de Operação (dias)",
	LabelAvailability:   "Disponibilidade (%)",
	LabelPerformance:    "Performance (%)",
	LabelQuality:        "Qualidade (%)",
	LabelOEE:            "OEE (%)",
}

var EnUS = Locale{
	Title:           "OEE Control - Laboratory",
	CapacityBanner:  "Usage capacity: %d circuits",
	CircuitsHeader:  "Circuits",
	CompilationHead: "Summary",

	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	Weekdays: [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"},

	LabelTestsRequested: "Tests Requested",
	LabelTestsPerformed: "Tests Performed",
	LabelReportsIssued:  "Reports Issued",
	LabelReportsOnTime:  "Reports On Time",
	LabelAvailableDays:  "Available Time (days)",
	LabelOperatingDays:  "Real Operating Time (days)",
	LabelAvailability:   "Availability (%)",
	LabelPerformance:    "Performance (%)",
	LabelQuality:        "Quality (%)",
	LabelOEE:            "OEE (%)",
}

// ForTag resolves a BCP 47 tag to a Locale, defaulting to pt-BR.
func ForTag(tag string) Locale {
	switch tag {
	case "en", "en-US", "en_US":
		return EnUS
	default:
		return PtBR
	}
}
