package main

import (
	"strings"

	"github.com/spf13/cobra"

	"courtclock/internal/core/deadline"
	"courtclock/internal/platform/config"
	deadlinesdomain "courtclock/internal/services/api/deadlines/domain"
	deadlinessvc "courtclock/internal/services/api/deadlines/service"
	holidayssvc "courtclock/internal/services/api/holidays/service"
)

// federalPad is how many years of federal holidays the offline catalog carries past the trigger year
const federalPad = 2

func newCalcCmd(cfg config.Conf) *cobra.Command {
	var (
		in           deadlinesdomain.CalculateInput
		holidaysFile string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a deadline offline against generated federal holidays",
		Example: "  courtclock-admin calc --trigger 2024-11-25 --limit 3 --method COURT_DAYS\n" +
			"  courtclock-admin calc --trigger 2024-01-01 --limit 10 --method BUSINESS_DAYS",
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			in.TimeLimitUnit = strings.ToUpper(in.TimeLimitUnit)
			in.CalculationMethod = strings.ToUpper(in.CalculationMethod)
			ein, err := in.ToEngine()
			if err != nil {
				return err
			}
			if err := ein.Validate(); err != nil {
				return err
			}

			src, err := offlineHolidays(ein, holidaysFile)
			if err != nil {
				return err
			}
			cat := deadline.LoadCatalog(c.Context(), src, ein.JurisdictionID, 0)
			e := deadline.NewEngine(deadline.Catalogs{ein.JurisdictionID: cat},
				deadline.WithMaxSkipRun(deadlinessvc.ConfigFromEnv(cfg).MaxSkipRun))
			res, err := e.Calculate(ein)
			if err != nil {
				return err
			}
			return printJSON(c, deadlinesdomain.FromResult(res))
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.TriggerDate, "trigger", "", "trigger date, YYYY-MM-DD")
	f.Float64Var(&in.TimeLimit, "limit", 0, "time limit quantity")
	f.StringVar(&in.TimeLimitUnit, "unit", string(deadline.UnitDays), "MINUTES, HOURS, DAYS, WEEKS, MONTHS or YEARS")
	f.StringVar(&in.CalculationMethod, "method", string(deadline.MethodCalendarDays), "CALENDAR_DAYS, BUSINESS_DAYS, COURT_DAYS or CUSTOM")
	f.StringVar(&in.JurisdictionID, "jurisdiction", "", "jurisdiction id for imported holidays")
	f.BoolVar(&in.CalendarMonths, "calendar-months", false, "add months and years on the calendar instead of 30/365 days")
	f.StringVar(&holidaysFile, "holidays", "", "optional import document with extra holidays")
	_ = cmd.MarkFlagRequired("trigger")
	_ = cmd.MarkFlagRequired("limit")
	return cmd
}

// offlineHolidays serves generated federal holidays plus any imported ones
func offlineHolidays(in deadline.Input, file string) (deadline.StaticSource, error) {
	from := in.TriggerDate.Year() - 1
	days, err := deadline.LimitDays(in)
	if err != nil {
		return nil, err
	}
	// counting methods can stretch a span by weekends; double it to stay ahead of the counter
	to := in.TriggerDate.Year() + int(2*days/365) + federalPad
	hs := deadline.FederalCatalogHolidays(from, to)
	if file == "" {
		return deadline.StaticSource(hs), nil
	}
	doc, err := readImport(file)
	if err != nil {
		return nil, err
	}
	extra, err := holidayssvc.ImportHolidays(doc)
	if err != nil {
		return nil, err
	}
	return deadline.StaticSource(append(hs, extra...)), nil
}
