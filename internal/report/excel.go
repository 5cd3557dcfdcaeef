package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"oee-lab/internal/calendar"
	"oee-lab/internal/oee"
)

// Fixed status fills, matching the dashboard color coding.
const (
	colorUp       = "92D050" // green
	colorBroken   = "FF0000" // red
	colorPlanned  = "9BC2E6" // blue
	colorNoDemand = "FFEB9C" // yellow
	colorHeader   = "006B3D" // dark green banner
)

var statusColors = []struct {
	code  calendar.Status
	color string
}{
	{calendar.StatusUp, colorUp},
	{calendar.StatusBroken, colorBroken},
	{calendar.StatusPlanned, colorPlanned},
	{calendar.StatusNoDemand, colorNoDemand},
}

// Write renders the monthly control workbook: the color-coded per-circuit
// calendar, per-row status counts as COUNTIF formulas, and the OEE summary
// block whose ratios are spreadsheet formulas over the displayed counters.
func Write(path string, grid *calendar.Grid, summary oee.Summary, inputs oee.Inputs, loc Locale) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Controle_OEE_%d_%02d", grid.Year, grid.Month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	w := &workbook{f: f, sheet: sheet, grid: grid, loc: loc}
	if err := w.initStyles(); err != nil {
		return err
	}

	lastDataRow, err := w.layout(summary, inputs)
	if err != nil {
		return err
	}
	if err := w.conditionalFills(lastDataRow); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      7,
		TopLeftCell: "B8",
		ActivePane:  "bottomRight",
	}); err != nil {
		return err
	}

	return f.SaveAs(path)
}

type workbook struct {
	f     *excelize.File
	sheet string
	grid  *calendar.Grid
	loc   Locale

	styleTitle     int
	styleHeader    int
	styleMonthYear int
	styleCell      int
	styleCount     int
	legendStyles   map[calendar.Status]int
}

func (w *workbook) initStyles() error {
	banner := excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	var err error
	w.styleTitle, err = w.f.NewStyle(&excelize.Style{
		Fill:      banner,
		Font:      &excelize.Font{Family: "Calibri", Size: 40, Bold: true, Color: "FFFFFF"},
		Alignment: center,
	})
	if err != nil {
		return err
	}
	w.styleHeader, err = w.f.NewStyle(&excelize.Style{
		Fill:      banner,
		Font:      &excelize.Font{Family: "Calibri", Size: 11, Bold: true, Color: "FFFFFF"},
		Alignment: center,
	})
	if err != nil {
		return err
	}
	w.styleMonthYear, err = w.f.NewStyle(&excelize.Style{
		Fill:      banner,
		Font:      &excelize.Font{Family: "Calibri", Size: 36, Bold: true, Color: "FFFFFF"},
		Alignment: center,
	})
	if err != nil {
		return err
	}

	thin := []excelize.Border{
		{Type: "left", Color: "D9D9D9", Style: 1},
		{Type: "right", Color: "D9D9D9", Style: 1},
		{Type: "top", Color: "D9D9D9", Style: 1},
		{Type: "bottom", Color: "D9D9D9", Style: 1},
	}
	w.styleCell, err = w.f.NewStyle(&excelize.Style{Alignment: center, Border: thin})
	if err != nil {
		return err
	}
	w.styleCount, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Calibri", Size: 11, Bold: true, Color: "000000"},
		Alignment: center,
	})
	if err != nil {
		return err
	}

	w.legendStyles = make(map[calendar.Status]int, len(statusColors))
	for _, sc := range statusColors {
		id, err := w.f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{sc.color}, Pattern: 1},
			Font:      &excelize.Font{Family: "Calibri", Size: 11, Bold: true, Color: "000000"},
			Alignment: center,
		})
		if err != nil {
			return err
		}
		w.legendStyles[sc.code] = id
	}
	return nil
}

// layout writes every static cell and the data rows, returning the last
// calendar data row.
func (w *workbook) layout(summary oee.Summary, inputs oee.Inputs) (int, error) {
	lastColCalendar := w.grid.Days + 1
	totalLastCol := colName(lastColCalendar + 8)

	// Title banner.
	if err := w.mergeStyled("A1", totalLastCol+"1", w.loc.Title, w.styleTitle); err != nil {
		return 0, err
	}
	_ = w.f.SetRowHeight(w.sheet, 1, 60)

	// Legend row (B..E) and capacity banner.
	_ = w.f.SetRowHeight(w.sheet, 3, 25)
	for i, sc := range statusColors {
		cell := cellName(2+i, 3)
		_ = w.f.SetColWidth(w.sheet, colName(2+i), colName(2+i), 8)
		if err := w.f.SetCellValue(w.sheet, cell, string(sc.code)); err != nil {
			return 0, err
		}
		_ = w.f.SetCellStyle(w.sheet, cell, cell, w.legendStyles[sc.code])
	}
	capacity := fmt.Sprintf(w.loc.CapacityBanner, summary.Capacidade)
	if err := w.mergeStyled(cellName(lastColCalendar+1, 3), cellName(lastColCalendar+8, 3), capacity, w.styleHeader); err != nil {
		return 0, err
	}

	// Month and year banner.
	_ = w.f.SetRowHeight(w.sheet, 5, 50)
	monthEnd := lastColCalendar / 2
	monthName := w.loc.Months[int(w.grid.Month)-1]
	if err := w.mergeStyled("A5", cellName(monthEnd, 5), monthName, w.styleMonthYear); err != nil {
		return 0, err
	}
	if err := w.mergeStyled(cellName(monthEnd+1, 5), cellName(lastColCalendar, 5), fmt.Sprint(w.grid.Year), w.styleMonthYear); err != nil {
		return 0, err
	}

	// Calendar headers: weekday abbreviations (row 6) and day numbers (row 7).
	_ = w.f.SetRowHeight(w.sheet, 6, 25)
	_ = w.f.SetRowHeight(w.sheet, 7, 25)
	if err := w.mergeStyled("A6", "A7", w.loc.CircuitsHeader, w.styleHeader); err != nil {
		return 0, err
	}
	_ = w.f.SetColWidth(w.sheet, "A", "A", 20)
	for day := 1; day <= w.grid.Days; day++ {
		col := day + 1
		_ = w.f.SetColWidth(w.sheet, colName(col), colName(col), 5)
		wd := w.loc.Weekdays[int(w.grid.WeekdayOf(day))]
		if err := w.setStyled(cellName(col, 6), wd, w.styleHeader); err != nil {
			return 0, err
		}
		if err := w.setStyled(cellName(col, 7), day, w.styleHeader); err != nil {
			return 0, err
		}
	}

	// Compilation header above the COUNTIF columns.
	countStart := lastColCalendar + 3
	if err := w.mergeStyled(cellName(countStart, 6), cellName(countStart+3, 6), w.loc.CompilationHead, w.styleHeader); err != nil {
		return 0, err
	}
	for i, sc := range statusColors {
		_ = w.f.SetColWidth(w.sheet, colName(countStart+i), colName(countStart+i), 7)
		if err := w.setStyled(cellName(countStart+i, 7), string(sc.code), w.styleHeader); err != nil {
			return 0, err
		}
	}

	// Data rows. Blanked circuits keep their (empty) row.
	row := 8
	for _, circuit := range w.grid.Order {
		if err := w.setStyled(cellName(1, row), circuit, w.styleCell); err != nil {
			return 0, err
		}
		for day, status := range w.grid.Rows[circuit] {
			cell := cellName(day+2, row)
			if err := w.f.SetCellValue(w.sheet, cell, string(status)); err != nil {
				return 0, err
			}
			_ = w.f.SetCellStyle(w.sheet, cell, cell, w.styleCell)
		}

		dataRange := fmt.Sprintf("B%d:%s%d", row, colName(lastColCalendar), row)
		for i, sc := range statusColors {
			cell := cellName(countStart+i, row)
			formula := fmt.Sprintf(`COUNTIF(%s,"%s")`, dataRange, sc.code)
			if err := w.f.SetCellFormula(w.sheet, cell, formula); err != nil {
				return 0, err
			}
			_ = w.f.SetCellStyle(w.sheet, cell, cell, w.styleCount)
		}
		row++
	}
	lastDataRow := row - 1

	if err := w.summaryBlock(lastDataRow+2, summary, inputs); err != nil {
		return 0, err
	}
	return lastDataRow, nil
}

// summaryBlock writes the OEE counters and derives the three ratios and
// their product as formulas over those cells, so the workbook stays live
// when a counter is edited by hand.
func (w *workbook) summaryBlock(top int, s oee.Summary, in oee.Inputs) error {
	rows := []struct {
		label   string
		value   any
		formula string
	}{
		{label: w.loc.LabelTestsRequested, value: in.EnsaiosSolicitados},
		{label: w.loc.LabelTestsPerformed, value: in.EnsaiosExecutados},
		{label: w.loc.LabelReportsIssued, value: in.RelatoriosEmitidos},
		{label: w.loc.LabelReportsOnTime, value: in.RelatoriosNoPrazo},
		{label: w.loc.LabelAvailableDays, value: s.TempoDisponivel},
		{label: w.loc.LabelOperatingDays, value: s.TempoRealOp},
		{label: w.loc.LabelAvailability,
			formula: fmt.Sprintf("IFERROR(ROUND(B%d/B%d*100,2),0)", top+5, top+4)},
		{label: w.loc.LabelPerformance,
			formula: fmt.Sprintf("IFERROR(ROUND(B%d/B%d*100,2),0)", top+1, top)},
		{label: w.loc.LabelQuality,
			formula: fmt.Sprintf("IFERROR(ROUND(B%d/B%d*100,2),0)", top+3, top+2)},
		{label: w.loc.LabelOEE,
			formula: fmt.Sprintf("ROUND(B%d*B%d*B%d/10000,2)", top+6, top+7, top+8)},
	}

	for i, r := range rows {
		if err := w.setStyled(cellName(1, top+i), r.label, w.styleCount); err != nil {
			return err
		}
		cell := cellName(2, top+i)
		if r.formula != "" {
			if err := w.f.SetCellFormula(w.sheet, cell, r.formula); err != nil {
				return err
			}
		} else if err := w.f.SetCellValue(w.sheet, cell, r.value); err != nil {
			return err
		}
		_ = w.f.SetCellStyle(w.sheet, cell, cell, w.styleCount)
	}
	return nil
}

// conditionalFills colors every calendar cell by its status code.
func (w *workbook) conditionalFills(lastDataRow int) error {
	rangeRef := fmt.Sprintf("B8:%s%d", colName(w.grid.Days+1), lastDataRow)
	for _, sc := range statusColors {
		id, err := w.f.NewConditionalStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{sc.color}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		opts := []excelize.ConditionalFormatOptions{{
			Type:     "cell",
			Criteria: "equal to",
			Value:    fmt.Sprintf("%q", sc.code),
			Format:   &id,
		}}
		if err := w.f.SetConditionalFormat(w.sheet, rangeRef, opts); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) setStyled(cell string, value any, style int) error {
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, cell, cell, style)
}

func (w *workbook) mergeStyled(from, to string, value any, style int) error {
	if err := w.f.MergeCell(w.sheet, from, to); err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, from, value); err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, from, to, style)
}

func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
