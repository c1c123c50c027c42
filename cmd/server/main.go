package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"guildgate/access"
	"guildgate/discord"
	"guildgate/internal/config"
	"guildgate/server"
	"guildgate/sessions"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	initLogger(cfg)
	displayAppname(cfg.AppName)

	sessionRepo := sessions.NewInMemorySessionRepo(cfg.SessionTTL)
	defer sessionRepo.Close()

	discordClient := discord.NewClient(discord.Config{
		ClientID:     cfg.DiscordClientID,
		ClientSecret: cfg.DiscordClientSecret,
		RedirectURI:  cfg.DiscordRedirectURI,
		GuildID:      cfg.DiscordGuildID,
		BotToken:     cfg.DiscordBotToken,
		Timeout:      cfg.DiscordTimeout,
	})

	resolver := access.NewResolver(access.Config{
		GuildID:     cfg.DiscordGuildID,
		BotToken:    cfg.DiscordBotToken,
		BasicRoleID: cfg.DiscordBasicRoleID,
		ProRoleID:   cfg.DiscordProRoleID,
	}, discordClient)

	srv, err := server.New(cfg, sessionRepo, discordClient, resolver)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv, ReadHeaderTimeout: 10 * time.Second}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func initLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.IsDev() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
