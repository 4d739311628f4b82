// cmd/companion/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/behavior"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/companion"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/config"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/mood"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/scheduler"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/storage"
	v "github.com/dkyazzentwatwa/kali-ink-bot-sub001/internal/version"
	"github.com/dkyazzentwatwa/kali-ink-bot-sub001/pkg/jobmgr"
)

func main() {
	log.Printf("[INFO] Starting %v v%v...", v.AppName, v.AppVersion)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	now := time.Now()
	comp, err := companion.New(companion.Options{
		Traits: mood.Traits{
			Curiosity:    cfg.TraitCuriosity,
			Cheerfulness: cfg.TraitCheerfulness,
			Verbosity:    cfg.TraitVerbosity,
			Playfulness:  cfg.TraitPlayfulness,
			Empathy:      cfg.TraitEmpathy,
			Independence: cfg.TraitIndependence,
		},
		DecayPerMinute:    cfg.DecayPerMinute,
		HourlyXPCap:       cfg.HourlyXPCap,
		DailyXPCap:        cfg.DailyXPCap,
		PerGrantMax:       cfg.PerGrantMax,
		PrestigeCap:       cfg.PrestigeCap,
		DisabledBehaviors: cfg.DisabledBehaviors,
		Scheduler: scheduler.Options{
			TickInterval: cfg.TickInterval,
			QuietStart:   cfg.QuietHoursStart,
			QuietEnd:     cfg.QuietHoursEnd,
		},
	}, now)
	if err != nil {
		log.Fatal(err)
	}

	if saved, ok, err := store.Load(); err != nil {
		log.Println("[ERR] Loading saved state:", err)
	} else if ok {
		comp.ImportState(*saved)
		log.Printf("[INFO] Restored state saved at %s", saved.SavedAt.Format(time.RFC3339))
	}

	jm := jobmgr.NewManager(func(msg string) {
		log.Println("[JOB]", msg)
	})

	if err := jm.StartAsync("tick", func(ctx context.Context) error {
		comp.Run(ctx, func(msg *behavior.Message) {
			log.Printf("[COMPANION] %s: %s %v", msg.Behavior, msg.Template, msg.Params)
		})
		return nil
	}); err != nil {
		log.Fatal(err)
	}

	if err := jm.StartAsync("autosave", func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.AutosaveEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := store.Save(comp.ExportState(time.Now())); err != nil {
					log.Println("[ERR] Autosave:", err)
				}
			}
		}
	}); err != nil {
		log.Fatal(err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
	case <-ctx.Done():
	}

	cancel()
	jm.StopAll()

	if err := store.Save(comp.ExportState(time.Now())); err != nil {
		log.Println("[ERR] Final save:", err)
	}

	log.Printf("[INFO] %v exited cleanly", v.AppName)
}
