// Command createuser provisions specialist and admin accounts, which cannot
// self-register. Accounts created here are already email-verified.
//
//	createuser -role SPECIALIST -email ana@campus.edu -first Ana -last Lopez -password ... -department Counseling
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/BruksfildServices01/campus-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/campus-scheduler/internal/db"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	infraRepo "github.com/BruksfildServices01/campus-scheduler/internal/infra/repository"
	loggerpkg "github.com/BruksfildServices01/campus-scheduler/internal/logger"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	ucAuth "github.com/BruksfildServices01/campus-scheduler/internal/usecase/auth"
)

func main() {
	var (
		role       = flag.String("role", string(identity.RoleSpecialist), "SPECIALIST or ADMIN")
		email      = flag.String("email", "", "login email")
		password   = flag.String("password", "", "initial password")
		first      = flag.String("first", "", "first name")
		last       = flag.String("last", "", "last name")
		phone      = flag.String("phone", "", "phone (optional)")
		department = flag.String("department", "", "department (optional)")
	)
	flag.Parse()

	r, ok := identity.ParseRole(*role)
	if !ok || r == identity.RoleStudent {
		fmt.Fprintln(os.Stderr, "role must be SPECIALIST or ADMIN; students register through the API")
		os.Exit(2)
	}

	reg := account.Registration{
		Email:      *email,
		Password:   *password,
		FirstName:  *first,
		LastName:   *last,
		Phone:      *phone,
		Department: *department,
	}
	reg.Normalize()
	if err := reg.Validate(""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := loggerpkg.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	hashed, err := ucAuth.HashPassword(reg.Password)
	if err != nil {
		log.Fatal(err)
	}

	u := &models.User{
		Email:         reg.Email,
		FirstName:     reg.FirstName,
		LastName:      reg.LastName,
		PasswordHash:  hashed,
		Role:          string(r),
		EmailVerified: true,
	}
	if reg.Phone != "" {
		u.Phone = &reg.Phone
	}
	if reg.Department != "" {
		u.Department = &reg.Department
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := infraRepo.NewUserGormRepository(db).CreateUser(ctx, u); err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("created %s %s (id %d)\n", u.Role, u.Email, u.ID)
}
