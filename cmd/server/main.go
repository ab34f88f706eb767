// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"reusehub/internal/availability"
	"reusehub/internal/catalog"
	"reusehub/internal/identity"
	"reusehub/internal/intake"
	"reusehub/internal/ledger"
	"reusehub/internal/location"
	"reusehub/internal/server"
	"reusehub/internal/session"
	"reusehub/internal/store/memstore"
	"reusehub/internal/store/pgstore"
	"reusehub/internal/taxonomy"
	"reusehub/internal/telemetry"
	"reusehub/pkg/eventlog"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	if endpoint := os.Getenv("OTLP_ENDPOINT"); endpoint != "" {
		shutdown, err := telemetry.Setup(ctx, "reusehub", endpoint)
		if err != nil {
			log.Fatalf("Failed to set up tracing: %v", err)
		}
		defer shutdown(ctx)
	}

	var (
		taxStore   taxonomy.Store
		locStore   location.Store
		catStore   catalog.Store
		availStore availability.Store
		ledStore   ledger.Store
		idStore    identity.Store
		activity   eventlog.Log
	)

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		st, db, err := pgstore.Open(dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		taxStore, locStore, catStore, availStore, ledStore, idStore = st, st, st, st, st, st
		activity = eventlog.NewPostgresLog(db.DB)
	} else {
		log.Printf("DATABASE_URL not set, using the in-memory store")
		st := memstore.New()
		seedDev(st)
		taxStore, locStore, catStore, availStore, ledStore, idStore = st, st, st, st, st, st
		activity = eventlog.NewMemoryLog()
	}

	var sessions session.Store
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		sessions = session.NewRedisStore(rdb, 12*time.Hour)
	} else {
		log.Printf("REDIS_ADDR not set, keeping session pointers in memory")
		sessions = session.NewMemoryStore()
	}

	taxonomySvc := taxonomy.NewService(taxStore)
	locationSvc := location.NewService(locStore)
	catalogSvc := catalog.NewService(catStore, locationSvc)
	availabilitySvc := availability.NewService(availStore)
	identitySvc := identity.NewService(idStore, activity)
	ledgerSvc := ledger.NewService(ledStore, identitySvc, activity)
	intakeSvc := intake.NewService(identitySvc, taxonomySvc, catalogSvc, activity)

	router := server.New(server.Handlers{
		Taxonomy:     taxonomy.NewHandler(taxonomySvc),
		Location:     location.NewHandler(locationSvc),
		Catalog:      catalog.NewHandler(catalogSvc),
		Availability: availability.NewHandler(availabilitySvc),
		Ledger:       ledger.NewHandler(ledgerSvc, sessions),
		Intake:       intake.NewHandler(intakeSvc),
		Identity:     identity.NewHandler(identitySvc),
	}, sessions)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 Starting reusehub on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// seedDev gives the in-memory store enough reference data for the intake
// forms to work out of the box.
func seedDev(st *memstore.Store) {
	st.SeedCategories(
		taxonomy.Category{MainCategory: "Furniture", SubCategory: "Chair"},
		taxonomy.Category{MainCategory: "Furniture", SubCategory: "Table"},
		taxonomy.Category{MainCategory: "Furniture", SubCategory: "Bed"},
		taxonomy.Category{MainCategory: "Kitchenware", SubCategory: "Cookware"},
	)
	st.SeedShelf(location.Shelf{RoomNum: 1, ShelfNum: 1, Description: "north wall"})
	st.SeedShelf(location.Shelf{RoomNum: 1, ShelfNum: 2, Description: "south wall"})
	st.SeedShelf(location.Shelf{RoomNum: 2, ShelfNum: 1, Description: "large goods"})
}
