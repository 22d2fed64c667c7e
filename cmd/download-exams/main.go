// Command download-exams retrieves the final graded submission of
// every student on the roster, for every configured problem, into the
// submissions/<person code>/<problem>/ folder tree.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mscuttari/domjudge-exam-configurator/internal/config"
	"github.com/mscuttari/domjudge-exam-configurator/internal/database"
	"github.com/mscuttari/domjudge-exam-configurator/internal/harvester"
	"github.com/mscuttari/domjudge-exam-configurator/internal/roster"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s db-config.json exam-config.json students.csv\n", os.Args[0])
		os.Exit(2)
	}

	dbConfig, err := config.LoadDatabaseConfig(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to load database configuration: %v", err)
	}

	examConfig, err := config.LoadExamConfig(os.Args[2])
	if err != nil {
		log.Fatalf("Failed to load exam configuration: %v", err)
	}

	students, err := roster.Load(os.Args[3])
	if err != nil {
		log.Fatalf("Failed to load students roster: %v", err)
	}

	db, err := database.NewGormConnection(database.Config{
		Host:     dbConfig.Host,
		Port:     dbConfig.Port,
		User:     dbConfig.User,
		Password: dbConfig.Password,
		DBName:   dbConfig.Database,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	h := harvester.New(database.NewStore(db), examConfig, harvester.DefaultOutputDir)

	failed, err := h.Run(context.Background(), students)
	if err != nil {
		log.Fatalf("Failed to download exams: %v", err)
	}

	log.Printf("downloaded exams for %d/%d students into %s",
		len(students)-len(failed), len(students), harvester.DefaultOutputDir)
}
