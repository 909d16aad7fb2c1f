// Command normalize turns scraped lecture records into the schedule index
// served by cmd/server.
//
//	normalize -src hufs_lectures.json -out classroom_schedule.json
//	normalize -src https://example.edu/lectures.json -mysql
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hufspace/classroom-finder/internal/config"
	"github.com/hufspace/classroom-finder/internal/database"
	"github.com/hufspace/classroom-finder/internal/logger"
	"github.com/hufspace/classroom-finder/internal/repository"
	"github.com/hufspace/classroom-finder/internal/schedule"
)

func main() {
	src := flag.String("src", "hufs_lectures.json", "raw lectures: JSON file, .xlsx workbook or http(s) URL")
	out := flag.String("out", "classroom_schedule.json", "output schedule artifact")
	field := flag.String("field", schedule.DefaultField, "lecture attribute holding day/period/room groups")
	toMySQL := flag.Bool("mysql", false, "also replace the schedule tables in MySQL (DB_* env vars)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	_ = godotenv.Load()

	log, err := logger.New(*logLevel, "console", "classroom-normalize")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, *src, *out, *field, *toMySQL); err != nil {
		log.Error("normalize failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *zap.Logger, src, out, field string, toMySQL bool) error {
	lectures, err := schedule.ReadLectures(ctx, src)
	if err != nil {
		return err
	}

	idx, stats := schedule.Normalizer{Field: field}.Normalize(lectures)
	log.Info("normalized",
		zap.String("src", src),
		zap.Int("lectures", stats.Total),
		zap.Int("processed", stats.Processed),
		zap.Int("rooms", stats.Rooms))

	if err := schedule.WriteFile(out, idx); err != nil {
		return err
	}

	if toMySQL {
		db, err := database.Open(config.LoadDBConfig())
		if err != nil {
			return fmt.Errorf("open mysql: %w", err)
		}
		defer db.Close()
		repo := repository.NewScheduleRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := repo.Replace(ctx, idx); err != nil {
			return err
		}
		log.Info("schedule stored in mysql", zap.Int("rooms", stats.Rooms))
	}

	fmt.Printf("총 강의 수: %d\n", stats.Total)
	fmt.Printf("처리된 강의 수: %d\n", stats.Processed)
	fmt.Printf("고유 강의실 수: %d\n", stats.Rooms)
	fmt.Printf("결과 파일: %s\n", out)
	return nil
}
