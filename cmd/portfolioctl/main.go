package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ignatzorin/portfolio-backend/internal/client"
	"github.com/ignatzorin/portfolio-backend/internal/contentstore"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

const usage = `portfolioctl выгружает и загружает содержимое портфолио через API.

Использование:
  portfolioctl [флаги] pull [файл]   сохранить содержимое в файл (по умолчанию stdout)
  portfolioctl [флаги] push [файл]   отправить содержимое из файла (по умолчанию stdin)

Флаги:
`

func main() {
	baseURL := flag.String("url", envOr("PORTFOLIO_URL", "http://localhost:8080"), "адрес API")
	email := flag.String("email", os.Getenv("PORTFOLIO_EMAIL"), "email администратора")
	password := flag.String("password", os.Getenv("PORTFOLIO_PASSWORD"), "пароль администратора")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger.Init("warn")
	logger.SetTextFormatter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.NewClient(*baseURL)
	if *email != "" {
		if _, err := api.Login(ctx, *email, *password); err != nil {
			log.Fatalf("portfolioctl: вход не выполнен: %v", err)
		}
	}
	store := contentstore.New(api)

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "pull":
		err = pull(ctx, store, flag.Arg(1))
	case "push":
		if !api.Authenticated() {
			log.Fatalf("portfolioctl: для push нужны -email и -password")
		}
		err = push(ctx, store, flag.Arg(1))
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("portfolioctl: %v", err)
	}
}

func pull(ctx context.Context, store *contentstore.Store, path string) error {
	if err := store.Load(ctx); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return store.Export(w)
}

func push(ctx context.Context, store *contentstore.Store, path string) error {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	if err := store.Import(r); err != nil {
		return err
	}
	if err := store.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "сохранено %s\n", store.State().LastSaved.Format("2006-01-02 15:04:05"))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
