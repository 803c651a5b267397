package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/inmem"
	"github.com/trezcool/gradebook/storage/restapi"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags), conf)

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
	} else {
		client := restapi.NewClient(conf.API.BaseURL, conf.API.Timeout)
		deps.Students = client
		deps.Grades = client
		deps.Attendance = client
	}

	cli := commandLine{ws: console.NewWorkspace(deps), out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintln(os.Stderr, failMessage(err.Error()))
			if conf.Debug {
				logger.Debug(fmt.Sprintf("command %v failed: %+v", os.Args[1:], err))
			}
		}
		os.Exit(1)
	}
}
