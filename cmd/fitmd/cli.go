package main

import (
	"context"
	"io"

	"github.com/fwojciec/fitmd"
	"github.com/fwojciec/fitmd/goquery"
	"github.com/fwojciec/fitmd/htmltomarkdown"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Normalizer fitmd.Normalizer
	Converter  fitmd.PageConverter
	Plain      *htmltomarkdown.Converter
	Text       *goquery.Normalizer
	Tokens     fitmd.TokenCounter
}

// ConvertCmd handles the main conversion operation.
type ConvertCmd struct {
	File       string
	URL        string
	Filter     string
	Query      string
	Threshold  float64
	Dynamic    bool
	MinWords   int
	K1         float64
	B          float64
	Engine     string
	Text       bool
	Fit        bool
	References bool
	JSON       bool
}
