// Package pkg provides the libraries behind the dailywall wallpaper composer.
//
// # Overview
//
// A run turns three web pages into one desktop background: a concept art
// image fitted to the screen, an hourly forecast panel and a joke panel
// drawn over its top-right corner. The pkg directory is organized as:
//
//  1. [sources] and [scrape] - Fetching and extracting page content
//  2. [textlayout], [fonts] and [panel] - Typesetting the overlay panels
//  3. [compose] - Fitting the background and blending panels onto it
//  4. [sink] and [display] - Output files, wallpaper setters, screen size
//  5. [pipeline] - Orchestration (fetch, fit, panels, write)
//  6. [config], [cache], [httputil], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
//	concept art catalog    forecast page    joke page
//	         ↓                   ↓              ↓
//	    [compose] fit       [panel] table   [panel] wrapped text
//	         ↓                   ↓              ↓
//	         └────── [compose] Overlay (mask, blend, redraw) ──────┘
//	                             ↓
//	               [sink] JPEG + BackgroundInfo.txt
//
// # Quick Start
//
//	renderer := panel.NewRenderer(panel.DefaultConfig(), panel.NewFontTypesetter(font))
//	runner := pipeline.NewRunner(httputil.NewClient(nil), renderer, &sink.Writer{ImagePath: "wall.jpg"}, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Width: 1920, Height: 1080})
package pkg
