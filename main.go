package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/deepmate/internal/board"
	"github.com/hailam/deepmate/internal/engine"
	"github.com/hailam/deepmate/internal/game"
	"github.com/hailam/deepmate/internal/storage"
)

const ttSizeMB = 64

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	prefs := storage.DefaultPreferences()

	store, err := storage.NewStorage()
	if err != nil {
		log.Warn().Err(err).Msg("storage unavailable, using defaults")
		store = nil
	} else {
		defer store.Close()
		if p, err := store.LoadPreferences(); err != nil {
			log.Warn().Err(err).Msg("could not load preferences, using defaults")
		} else {
			prefs = p
		}
	}

	humanColor := board.White
	if prefs.HumanColor == storage.ColorBlack {
		humanColor = board.Black
	}

	eng := engine.New(ttSizeMB)
	g := game.New(eng, humanColor, prefs.SearchDepth, os.Stdin, os.Stdout)
	result := g.Run()

	if store == nil || result == game.ResultAborted {
		return
	}

	outcome := storage.OutcomeDraw
	switch result {
	case game.ResultHumanWin:
		outcome = storage.OutcomeWin
	case game.ResultEngineWin:
		outcome = storage.OutcomeLoss
	}
	if err := store.RecordGame(outcome); err != nil {
		log.Warn().Err(err).Msg("could not record game result")
	}
	if err := store.SavePreferences(prefs); err != nil {
		log.Warn().Err(err).Msg("could not save preferences")
	}
}
