package cli

import (
	"context"
	"log"
	"os"

	"github.com/charbel291291291/election2026/internal/client/services"
)

// Report walks the user through capturing a field report and hands it to
// the submission gateway. Whether it went straight to the server or into
// the offline queue is reported back.
func (a *App) Report(ctx context.Context) error {
	category, err := getSimpleText(a.reader, "Enter category (vote_count, violation, survey, logistics)", os.Stdout)
	if err != nil {
		return err
	}

	notes, err := GetMultiline(a.reader, "Enter notes", os.Stdout)
	if err != nil {
		return err
	}

	metric, err := GetFloat(a.reader, "Enter metric value (empty for none)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	lat, err := GetFloat(a.reader, "Enter latitude (empty for none)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	lon, err := GetFloat(a.reader, "Enter longitude (empty for none)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	annotation, err := getSimpleText(a.reader, "Enter annotation (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	photo, err := getSimpleText(a.reader, "Enter photo file path (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	outcome, report, err := a.gateway.Submit(ctx, services.ReportInput{
		Category:    category,
		Notes:       notes,
		Annotation:  annotation,
		MetricValue: metric,
		Latitude:    lat,
		Longitude:   lon,
		PhotoPath:   photo,
	})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	switch outcome {
	case services.OutcomeSent:
		printlnFn("Report", report.ID, "sent")
	case services.OutcomeQueued:
		printlnFn("Report", report.ID, "queued for sync")
	}
	return nil
}
