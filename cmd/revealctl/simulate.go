package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avendel/revealx"
	"github.com/avendel/revealx/dom"
	"github.com/avendel/revealx/realtime"
)

// printingHost wraps the document host and narrates every effect with
// the virtual timestamp it fired at.
type printingHost struct {
	doc *dom.Document
	rt  *realtime.Runtime
	out io.Writer
}

func (p *printingHost) BeginReveal(h revealx.Handle, duration time.Duration, offsetPx float64) {
	p.doc.BeginReveal(h, duration, offsetPx)
	fmt.Fprintf(p.out, "[%6dms] reveal       handle=%d duration=%dms\n",
		p.rt.Now().Milliseconds(), h, duration.Milliseconds())
}

func (p *printingHost) SetCounter(h revealx.Handle, value int64) {
	p.doc.SetCounter(h, value)
	fmt.Fprintf(p.out, "[%6dms] counter      handle=%d value=%d\n",
		p.rt.Now().Milliseconds(), h, value)
}

func (p *printingHost) SwapSource(h revealx.Handle) {
	p.doc.SwapSource(h)
	fmt.Fprintf(p.out, "[%6dms] swap-source  handle=%d\n",
		p.rt.Now().Milliseconds(), h)
}

func newSimulateCmd(flags *rootFlags) *cobra.Command {
	var (
		viewportPx float64
		scrollStep float64
		stepMs     int
		settleMs   int
	)

	cmd := &cobra.Command{
		Use:   "simulate <page.html>",
		Short: "scroll a page top to bottom and print activations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.engineConfig()
			if err != nil {
				return err
			}
			markers, err := flags.markers()
			if err != nil {
				return err
			}
			log, err := flags.logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := dom.Parse(f, markers)
			if err != nil {
				return err
			}

			engine, err := revealx.NewEngine(cfg, revealx.WithLogger(log))
			if err != nil {
				return err
			}

			obs := revealx.NewObserver()
			host := &printingHost{doc: doc, out: cmd.OutOrStdout()}
			rt := realtime.NewRuntime(engine, host, realtime.Config{},
				realtime.WithObserver(obs), realtime.WithLogger(log))
			host.rt = rt

			for _, reg := range doc.Scan() {
				var kc revealx.KindConfig
				kc.Targets = reg.Targets
				handles := engine.Register(reg.Keys, reg.Kind, kc)
				doc.BindRegistration(reg, handles)
				for i, h := range handles {
					entry, _ := engine.Entry(h)
					el, _ := doc.Element(reg.Keys[i])
					obs.ObserveEntry(entry, el.Rect)
				}
			}

			step := time.Duration(stepMs) * time.Millisecond
			for y := 0.0; y <= doc.Height(); y += scrollStep {
				rt.Enqueue(obs.SetViewport(y, viewportPx))
				rt.Advance(step)
			}
			// Let staggered reveals and counter animations run out.
			for settled := time.Duration(0); settled < time.Duration(settleMs)*time.Millisecond; settled += step {
				rt.Advance(step)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "done: %d entries, %d still observed\n",
				engine.Len(), obs.Len())
			return nil
		},
	}

	cmd.Flags().Float64Var(&viewportPx, "viewport", 800, "viewport height in px")
	cmd.Flags().Float64Var(&scrollStep, "scroll-step", 120, "scroll distance per step in px")
	cmd.Flags().IntVar(&stepMs, "step-ms", 50, "virtual time per scroll step")
	cmd.Flags().IntVar(&settleMs, "settle-ms", 2500, "extra virtual time after the last scroll step")
	return cmd
}
