package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/trezcool/gradebook/apps/web/echo"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/inmem"
	"github.com/trezcool/gradebook/storage/restapi"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	validate, translator := core.NewValidator()
	grade.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	deps := console.Deps{Validate: validate, Translator: translator}
	if conf.API.Demo {
		db := inmemdb.Open()
		inmemdb.Seed(db)
		deps.Students = inmemdb.NewStudentRepository(db)
		deps.Grades = inmemdb.NewGradeRepository(db)
		deps.Attendance = inmemdb.NewAttendanceRepository(db)
		logger.Info("Serving the in-memory demo API")
	} else {
		client := restapi.NewClient(conf.API.BaseURL, conf.API.Timeout)
		deps.Students = client
		deps.Grades = client
		deps.Attendance = client
		logger.Info(fmt.Sprintf("Using the students API at %q", conf.API.BaseURL))
	}
	workspaces := inmemdb.NewWorkspaceStore(deps)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoweb.NewServer(echoweb.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Translator: translator,
		Workspaces: workspaces,
	})

	go func() {
		server.Start()
	}()

	// drop idle sessions
	pruneCtx, stopPruning := context.WithCancel(context.Background())
	defer stopPruning()
	go func() {
		every := conf.Web.SessionIdle / 2
		if every <= 0 {
			every = time.Minute
		}
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := workspaces.Prune(conf.Web.SessionIdle); n > 0 {
					logger.Debug(fmt.Sprintf("pruned %d idle sessions", n))
				}
			case <-pruneCtx.Done():
				return
			}
		}
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Web.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
