package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bookshelf/bookshelf/pkg/books"
	"github.com/bookshelf/bookshelf/pkg/config"
	"github.com/bookshelf/bookshelf/pkg/database"
	"github.com/bookshelf/bookshelf/pkg/models"
	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	var opts struct {
		Database string `short:"d" long:"database" description:"Path to the database file (defaults to the configured one)"`
		JSON     bool   `short:"j" long:"json" description:"Print the books as JSON"`
		Debug    bool   `long:"debug" description:"Log every query"`
	}

	_, err := flags.Parse(&opts)
	if err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		log.Err(err).Fatal("flags parse error")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}
	if opts.Database != "" {
		cfg.DatabaseFilePath = opts.Database
	}
	cfg.DatabaseDebug = opts.Debug
	cfg.DatabaseConnectRetryCount = 1

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if opts.Debug {
		ctx = database.WithLogging(ctx)
	}

	list, err := books.NewService(db).ListBooks(ctx)
	if err != nil {
		log.Err(err).Fatal("list books error")
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			log.Err(err).Fatal("json encode error")
		}
		return
	}

	fmt.Printf("%d book(s) in %s\n", len(list), cfg.DatabaseFilePath)
	for _, b := range list {
		printBook(b)
	}
}

func printBook(b *models.Book) {
	fmt.Printf("#%d\n", b.ID)
	fmt.Printf("  Autor:     %s\n", orDash(b.Autor))
	fmt.Printf("  ISBN:      %s\n", orDash(b.Isbn))
	fmt.Printf("  Editorial: %s\n", orDash(b.Editorial))
	fmt.Printf("  Paginas:   %s\n", orDash(b.Paginas))
}

func orDash[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
