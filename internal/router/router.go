package router

import (
	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/middleware"
	"workforce/backend/internal/pkg/config"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres/attendance"
	"workforce/backend/internal/repository/postgres/payroll"
	"workforce/backend/internal/repository/postgres/shift"
	"workforce/backend/internal/repository/postgres/store"
	"workforce/backend/internal/repository/postgres/user"
	"workforce/backend/internal/service/upload"

	"github.com/redis/go-redis/v9"

	attendance_controller "workforce/backend/internal/controller/http/v1/attendance"
	auth_controller "workforce/backend/internal/controller/http/v1/auth"
	payroll_controller "workforce/backend/internal/controller/http/v1/payroll"
	shift_controller "workforce/backend/internal/controller/http/v1/shift"
	store_controller "workforce/backend/internal/controller/http/v1/store"
	user_controller "workforce/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB         *postgresql.Database
	redisDB            *redis.Client
	port               string
	auth               *auth.Auth
	cfg                *config.Config
	fileServerBasePath string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	authenticator *auth.Auth,
	cfg *config.Config,
	fileServerBasePath string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		authenticator,
		cfg,
		fileServerBasePath,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware())

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB, r.cfg.Rules)
	storePostgres := store.NewRepository(r.postgresDB, r.cfg.Rules)
	shiftPostgres := shift.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, r.cfg.Rules, r.redisDB)
	payrollPostgres := payroll.NewRepository(r.postgresDB, r.cfg.Rules)

	uploader := upload.NewService(r.fileServerBasePath, r.cfg.BaseUrl)

	// controller
	authController := auth_controller.NewController(userPostgres, r.cfg.JWTKeyFile)
	userController := user_controller.NewController(userPostgres, r.cfg.BaseUrl)
	storeController := store_controller.NewController(storePostgres, uploader)
	shiftController := shift_controller.NewController(shiftPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres)
	payrollController := payroll_controller.NewController(payrollPostgres)

	r.Static("/media", r.fileServerBasePath)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #user
	r.Get("/api/v1/user/list", userController.GetList, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor, auth.RoleAccountant))
	r.Get("/api/v1/user/:id", userController.GetDetailById, middleware.Authenticate(r.auth))
	r.Get("/api/v1/user/:id/badge", userController.GetBadge, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Post("/api/v1/user/create", userController.Create, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Patch("/api/v1/user/:id", userController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Post("/api/v1/user/change-password", userController.ChangePassword, middleware.Authenticate(r.auth))
	r.Post("/api/v1/user/reset-password", userController.ResetPassword, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Delete("/api/v1/user/:id", userController.Delete, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))

	// #store
	r.Get("/api/v1/store/list", storeController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/store/:id", storeController.GetDetailById, middleware.Authenticate(r.auth))
	r.Post("/api/v1/store/create", storeController.Create, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Patch("/api/v1/store/:id", storeController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Post("/api/v1/store/:id/logo", storeController.UploadLogo, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Delete("/api/v1/store/:id", storeController.Delete, middleware.Authenticate(r.auth, auth.RoleCo))

	// #shift
	r.Get("/api/v1/shift/list", shiftController.GetList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/shift/create", shiftController.Create, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor))
	r.Patch("/api/v1/shift/:id", shiftController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor))
	r.Delete("/api/v1/shift/:id", shiftController.Delete, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor))

	// #attendance
	r.Post("/api/v1/attendance/clock-in", attendanceController.ClockIn, middleware.Authenticate(r.auth, auth.RoleEmployee, auth.RoleSupervisor))
	r.Post("/api/v1/attendance/clock-out", attendanceController.ClockOut, middleware.Authenticate(r.auth, auth.RoleEmployee, auth.RoleSupervisor))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/working/:store_id", attendanceController.CurrentlyWorking, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleSupervisor))
	r.Post("/api/v1/attendance/overtime", attendanceController.SetOvertime, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Patch("/api/v1/attendance/:id", attendanceController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager))
	r.Post("/api/v1/attendance/sweep", attendanceController.Sweep, middleware.Authenticate(r.auth, auth.RoleCo))

	// the sweep is also driven by a local scheduler, not just admins
	r.Post("/internal/sweep", attendanceController.Sweep, middleware.InternalOnly())

	// #payroll
	r.Get("/api/v1/payroll/my-earnings", payrollController.MyEarnings, middleware.Authenticate(r.auth))
	r.Get("/api/v1/payroll/all-earnings", payrollController.AllEarnings, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleAccountant))
	r.Get("/api/v1/payroll/unpaid", payrollController.UnpaidEarnings, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleAccountant))
	r.Post("/api/v1/payroll/mark-as-paid", payrollController.MarkAsPaid, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleAccountant))
	r.Get("/api/v1/payroll/history", payrollController.PaymentHistory, middleware.Authenticate(r.auth))
	r.Get("/api/v1/payroll/receipt/:id", payrollController.Receipt, middleware.Authenticate(r.auth))
	r.Get("/api/v1/payroll/export", payrollController.ExportWorkbook, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleAccountant))
	r.Get("/api/v1/payroll/export-csv", payrollController.ExportCSV, middleware.Authenticate(r.auth, auth.RoleCo, auth.RoleManager, auth.RoleAccountant))

	return r.Run(r.port)
}
