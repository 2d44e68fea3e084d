package main

import (
	"fmt"
	"net/http"

	"github.com/leavehr/leave-backend-go/internal/config"
	appHTTP "github.com/leavehr/leave-backend-go/internal/handler/http"
	"github.com/leavehr/leave-backend-go/internal/pkg/database"
	"github.com/leavehr/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehr/leave-backend-go/internal/repository/postgresql"
	authService "github.com/leavehr/leave-backend-go/internal/service/auth"
	employeeService "github.com/leavehr/leave-backend-go/internal/service/employee"
	leaveService "github.com/leavehr/leave-backend-go/internal/service/leave"
	reportService "github.com/leavehr/leave-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	ledger := leaveService.NewLedger(balanceRepo)
	workflow := leaveService.NewWorkflow(txManager, requestRepo, balanceRepo, ledger)
	empService := employeeService.NewEmployeeService(txManager, employeeRepo, balanceRepo, requestRepo)
	authSvc := authService.NewAuthService(employeeRepo, JWTService)
	reportSvc := reportService.NewReportService(reportRepo, balanceRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(empService)
	leaveHandler := appHTTP.NewLeaveHandler(workflow)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		employeeHandler,
		leaveHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
