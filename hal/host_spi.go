//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"rotozoom/uc1701"
)

// RunSPI drives a UC1701 panel wired to a Linux SPI port (for example a
// Raspberry Pi), with cfg.DC as the command/data line and cfg.RST as the
// optional reset line.
func RunSPI(ctx context.Context, newApp NewApp, cfg HostConfig) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("spi: periph init: %w", err)
	}
	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return fmt.Errorf("spi: open %q: %w", cfg.SPI, err)
	}
	defer port.Close()

	dc := gpioreg.ByName(cfg.DC)
	if dc == nil {
		return fmt.Errorf("spi: no GPIO named %q", cfg.DC)
	}
	var rst gpio.PinOut
	if cfg.RST != "" {
		p := gpioreg.ByName(cfg.RST)
		if p == nil {
			return fmt.Errorf("spi: no GPIO named %q", cfg.RST)
		}
		rst = p
	}

	h := newHostHAL(os.Stdout)
	dev, err := uc1701.NewSPI(port, dc, rst, h.clock)
	if err != nil {
		return err
	}
	if err := dev.Init(h.clock); err != nil {
		return err
	}
	defer dev.Halt()
	if err := tunePanel(dev, cfg); err != nil {
		return err
	}
	h.logger.WriteLineString(fmt.Sprintf("spi: %s on %s (DC %s)", dev, port, dc))
	h.disp = mirrorDisplay{primary: dev, shadow: h.pages}

	if err := h.useSpeaker(cfg); err != nil {
		return err
	}
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer h.aud.Stop()

	err = app.Run(ctx, cfg.Frames)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type panelTuner interface {
	SetContrast(v uint8) error
	Invert(on bool) error
}

// tunePanel applies the optional contrast and inversion settings.
func tunePanel(p panelTuner, cfg HostConfig) error {
	if cfg.Contrast < 0 || cfg.Contrast > 63 {
		return fmt.Errorf("spi: contrast %d out of range 1..63", cfg.Contrast)
	}
	if cfg.Contrast > 0 {
		if err := p.SetContrast(uint8(cfg.Contrast)); err != nil {
			return fmt.Errorf("spi: contrast: %w", err)
		}
	}
	if cfg.Invert {
		if err := p.Invert(true); err != nil {
			return fmt.Errorf("spi: invert: %w", err)
		}
	}
	return nil
}
