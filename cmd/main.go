package main

import (
	"fmt"
	"log"
	"os"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/commands"
	"workforce/backend/internal/pkg/config"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln("main: error:", err)
	}
}

func run() error {
	var flags struct {
		Web struct {
			Port               string `conf:"default::8080"`
			FileServerBasePath string `conf:"default:./media"`
		}
	}

	if err := conf.Parse(os.Args[1:], "WORKFORCE", &flags); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage("WORKFORCE", &flags)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return nil
		}
		return errors.Wrap(err, "parsing config")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config.yaml")
	}

	postgresDB := postgresql.NewDatabase(postgresql.Config{
		Username:   cfg.DBUsername,
		Password:   cfg.DBPassword,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
	})
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisDB.Close()

	authenticator, err := auth.New(cfg.JWTKeyFile)
	if err != nil {
		return errors.Wrap(err, "constructing authenticator")
	}

	app := web.NewApp()

	r := router.NewRouter(
		app,
		postgresDB,
		redisDB,
		flags.Web.Port,
		authenticator,
		cfg,
		flags.Web.FileServerBasePath,
	)

	return r.Init()
}
