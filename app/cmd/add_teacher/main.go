package main

import (
	"flag"
	"fmt"

	"github.com/nbri15/final-dream-tracker/app/config"
	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

func main() {
	username := flag.String("username", "", "login name for the new teacher")
	password := flag.String("password", "", "initial password")
	admin := flag.Bool("admin", false, "grant admin rights")
	classID := flag.String("class", "", "optional class id to attach")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Println("Usage: add_teacher -username <name> -password <password> [-admin] [-class <id>]")
		return
	}

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	teacher := &models.Teacher{
		Username: *username,
		IsAdmin:  *admin,
		IsActive: true,
	}
	if *classID != "" {
		teacher.ClassID = classID
	}

	if err := database.CreateTeacher(db, teacher, *password); err != nil {
		fmt.Printf("Error creating teacher: %v\n", err)
		return
	}
	fmt.Printf("Teacher created successfully: %s\n", teacher.Username)
}
