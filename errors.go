/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Seednode/flames/games/flames"
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	slog.Info(fmt.Sprintf(format, args...))
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon())
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", html.EscapeString(title)))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", html.EscapeString(body)))

	return htmlBody.String()
}

// roundStatus maps errors from a round to a status code and the message
// shown to players, plus the reason label used in metrics.
func roundStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, flames.ErrEmptyName):
		return http.StatusBadRequest, "Please enter both names.", "empty_name"
	case errors.Is(err, flames.ErrNamesCancelOut):
		return http.StatusBadRequest, "Those names cancel each other out completely. Try another pair!", "cancel_out"
	case errors.Is(err, flames.ErrNonPositiveCount),
		errors.Is(err, flames.ErrNoCategories),
		errors.Is(err, flames.ErrStartOutOfRange):
		return http.StatusBadRequest, err.Error(), "invalid_count"
	default:
		return http.StatusInternalServerError, "An error has occurred. Please try again.", "internal"
	}
}
