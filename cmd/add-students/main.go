// Command add-students provisions exam accounts in the DOMjudge
// database for every student on the enrollment roster and exports
// their generated credentials to credentials.txt.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mscuttari/domjudge-exam-configurator/internal/config"
	"github.com/mscuttari/domjudge-exam-configurator/internal/database"
	"github.com/mscuttari/domjudge-exam-configurator/internal/provisioner"
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

	p := provisioner.New(database.NewStore(db), examConfig)

	failed, err := p.Run(context.Background(), students)
	if err != nil {
		log.Fatalf("Failed to provision students: %v", err)
	}

	log.Printf("provisioned %d/%d students, credentials written to %s",
		len(students)-len(failed), len(students), provisioner.CredentialsFileName)
}
