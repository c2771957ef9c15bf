package main

import (
	"github.com/careloop/careboard/config"
	"github.com/careloop/careboard/directory"
	"github.com/careloop/careboard/forum"
	"github.com/careloop/careboard/models"
	"github.com/careloop/careboard/routes"
	"github.com/careloop/careboard/storage"
	"github.com/careloop/careboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Doctor{}, &models.Appointment{}, &models.Availability{})
	mongoDB := config.InitMongo()

	store := storage.NewMongoStore(mongoDB)
	resolver := directory.NewDBResolver(db)
	engine := forum.NewEngine(store, resolver)

	r := routes.SetupRouter(db, engine)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
