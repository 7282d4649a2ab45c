/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Seednode/flames/games/flames"
	"github.com/google/uuid"
)

// RoundState tracks whether a session is free to start a round.
type RoundState int

const (
	Idle RoundState = iota
	Animating
)

func (s RoundState) String() string {
	switch s {
	case Animating:
		return "animating"
	default:
		return "idle"
	}
}

func (s RoundState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RoundState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "animating":
		*s = Animating
	default:
		return fmt.Errorf("unknown round state %q", text)
	}
	return nil
}

var ErrRoundInProgress = errors.New("a round is already being revealed")

// PlayedRound is a computed round as handed to clients for replay.
type PlayedRound struct {
	ID        string                 `json:"id"`
	StartedAt time.Time              `json:"started_at"`
	Round     flames.Round           `json:"round"`
	ShareText string                 `json:"share_text"`
	WebShare  flames.WebSharePayload `json:"web_share"`
	FileName  string                 `json:"file_name"`
}

// RoundController allows one round in flight per session. It is not safe
// for concurrent use; the owning hub serializes access.
type RoundController struct {
	state   RoundState
	current *PlayedRound
	last    *PlayedRound
	now     func() time.Time
}

func newRoundController() *RoundController {
	return &RoundController{now: time.Now}
}

func (c *RoundController) State() RoundState {
	return c.state
}

// Current returns the round being revealed, if any.
func (c *RoundController) Current() *PlayedRound {
	return c.current
}

// Last returns the most recently computed round, if any.
func (c *RoundController) Last() *PlayedRound {
	return c.last
}

// Begin computes a round and moves the session to Animating. base is the
// absolute site root the share URL is built on. Invalid names leave the
// state untouched.
func (c *RoundController) Begin(nameA, nameB, base string) (PlayedRound, error) {
	if c.state == Animating {
		return PlayedRound{}, ErrRoundInProgress
	}

	round, err := flames.Play(nameA, nameB)
	if err != nil {
		return PlayedRound{}, err
	}

	a, b := round.NameA.Original, round.NameB.Original

	played := PlayedRound{
		ID:        uuid.NewString(),
		StartedAt: c.now(),
		Round:     round,
		ShareText: flames.ShareText(a, b, round.Relationship),
		WebShare:  flames.WebShare(a, b, round.Relationship, resultLink(base, a, b)),
		FileName:  flames.ExportFileName(a, b),
	}

	c.state = Animating
	c.current = &played
	c.last = &played

	return played, nil
}

// Finish ends the reveal of round id. An empty id finishes whatever round
// is in flight. It reports whether the state changed.
func (c *RoundController) Finish(id string) bool {
	if c.state != Animating {
		return false
	}
	if id != "" && c.current != nil && c.current.ID != id {
		return false
	}

	c.state = Idle
	c.current = nil

	return true
}

// Reset returns to Idle and forgets the last round.
func (c *RoundController) Reset() {
	c.state = Idle
	c.current = nil
	c.last = nil
}
