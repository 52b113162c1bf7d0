package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/c9s/bollband/pkg/chart"
	"github.com/c9s/bollband/pkg/indicator"
	"github.com/c9s/bollband/pkg/types"
)

func (s *Server) ping(c *gin.Context) {
	snapshot := s.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"candles": len(snapshot.Prices),
		"version": snapshot.Version,
	})
}

func settingsResponse(snapshot Snapshot) gin.H {
	return gin.H{
		"settings": snapshot.Settings,
		"summary":  snapshot.Settings.String(),
		"version":  snapshot.Version,
	}
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, settingsResponse(s.Store.Snapshot()))
}

// putSettings replaces the whole settings value.
func (s *Server) putSettings(c *gin.Context) {
	var settings types.BollingerSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := s.Store.SetSettings(settings)
	if err != nil {
		abortWithSettingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, settingsResponse(snapshot))
}

// postSettings merges a settings patch, the fields left out keep their values.
func (s *Server) postSettings(c *gin.Context) {
	var patch types.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := s.Store.Apply(&patch)
	if err != nil {
		abortWithSettingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, settingsResponse(snapshot))
}

// patchSettings applies a json merge patch (RFC 7386) to the settings document.
func (s *Server) patchSettings(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := s.Store.Update(func(current types.BollingerSettings) (types.BollingerSettings, error) {
		return mergeSettings(current, body)
	})
	if err != nil {
		if types.IsConfigurationError(err) {
			abortWithSettingsError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settingsResponse(snapshot))
}

func mergeSettings(current types.BollingerSettings, patch []byte) (types.BollingerSettings, error) {
	doc, err := json.Marshal(current)
	if err != nil {
		return current, err
	}

	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return current, errors.Wrap(err, "invalid merge patch")
	}

	var next types.BollingerSettings
	if err := json.Unmarshal(merged, &next); err != nil {
		return current, errors.Wrap(err, "invalid settings document")
	}

	return next, nil
}

func abortWithSettingsError(c *gin.Context, err error) {
	var messages []string
	for _, e := range multierr.Errors(err) {
		messages = append(messages, e.Error())
	}

	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "invalid settings",
		"errors": messages,
	})
}

// querySettings overrides the stored settings with the query parameters
// length, source, k and offset, for this request only.
func querySettings(c *gin.Context, settings types.BollingerSettings) (types.BollingerSettings, error) {
	var patch types.SettingsPatch

	if v, ok := c.GetQuery("length"); ok {
		length, err := strconv.Atoi(v)
		if err != nil {
			return settings, errors.Wrap(err, "length")
		}
		patch.Length = &length
	}

	if v, ok := c.GetQuery("source"); ok {
		source, err := types.ParsePriceSource(v)
		if err != nil {
			return settings, err
		}
		patch.Source = &source
	}

	if v, ok := c.GetQuery("k"); ok {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return settings, errors.Wrap(err, "k")
		}
		patch.StdDevMultiplier = &k
	}

	if v, ok := c.GetQuery("offset"); ok {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return settings, errors.Wrap(err, "offset")
		}
		patch.Offset = &offset
	}

	return patch.Apply(settings), nil
}

// computeBands serves the stored bands unless the request overrides the settings.
func computeBands(c *gin.Context, snapshot Snapshot) (types.BollingerSettings, []types.BandPoint, error) {
	settings, err := querySettings(c, snapshot.Settings)
	if err != nil {
		return settings, nil, err
	}

	if settings == snapshot.Settings && c.Query("rolling") == "" {
		return settings, snapshot.Bands, snapshot.Err
	}

	if c.Query("rolling") == "true" || c.Query("rolling") == "1" {
		bands, err := indicator.BollingerRolling(snapshot.Prices, settings)
		return settings, bands, err
	}

	bands, err := indicator.Bollinger(snapshot.Prices, settings)
	return settings, bands, err
}

func queryRange(c *gin.Context, n int) (chart.VisibleRange, error) {
	r := chart.VisibleRange{From: 0, To: n}

	if v, ok := c.GetQuery("from"); ok {
		from, err := strconv.Atoi(v)
		if err != nil {
			return r, errors.Wrap(err, "from")
		}
		r.From = from
	}

	if v, ok := c.GetQuery("to"); ok {
		to, err := strconv.Atoi(v)
		if err != nil {
			return r, errors.Wrap(err, "to")
		}
		if to > 0 {
			r.To = to
		}
	}

	return r.Clamp(n), nil
}

func (s *Server) getBands(c *gin.Context) {
	snapshot := s.Store.Snapshot()

	settings, bands, err := computeBands(c, snapshot)
	if err != nil {
		if types.IsConfigurationError(err) {
			abortWithSettingsError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := queryRange(c, len(bands))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
		"total":    len(bands),
		"range":    r,
		"bands":    bands[r.From:r.To],
	})
}

// getBandAt is the crosshair lookup: the band whose window ends at the given candle.
func (s *Server) getBandAt(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid candle index"})
		return
	}

	snapshot := s.Store.Snapshot()
	if index < 0 || index >= len(snapshot.Prices) {
		c.JSON(http.StatusNotFound, gin.H{"error": "candle index out of range"})
		return
	}

	candle := snapshot.Prices[index]
	band, ok := indicator.BandAtPriceIndex(snapshot.Bands, snapshot.Settings, index)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"candle": candle, "band": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candle": candle, "band": band})
}

// OverlayRequest describes the host viewport of a remote canvas. The response
// carries the drawing commands the overlay issued for it.
type OverlayRequest struct {
	Settings *types.SettingsPatch `json:"settings,omitempty"`

	From     int     `json:"from"`
	To       int     `json:"to"`
	BarWidth float64 `json:"barWidth"`

	// YMin and YMax default to the band extremes in view.
	YMin   float64 `json:"yMin"`
	YMax   float64 `json:"yMax"`
	Height float64 `json:"height"`
}

func (s *Server) postOverlay(c *gin.Context) {
	var req OverlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BarWidth <= 0 || req.Height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barWidth and height must be positive"})
		return
	}

	snapshot := s.Store.Snapshot()
	settings := req.Settings.Apply(snapshot.Settings)

	bands := snapshot.Bands
	if settings != snapshot.Settings {
		var err error
		if bands, err = indicator.Bollinger(snapshot.Prices, settings); err != nil {
			abortWithSettingsError(c, err)
			return
		}
	} else if snapshot.Err != nil {
		abortWithSettingsError(c, snapshot.Err)
		return
	}

	r := chart.VisibleRange{From: req.From, To: req.To}
	if r.To == 0 {
		r.To = len(bands)
	}
	r = r.Clamp(len(bands))

	yMin, yMax := req.YMin, req.YMax
	if yMin == yMax {
		yMin, yMax = bandExtremes(bands[r.From:r.To])
	}

	recorder := chart.NewRecorder()
	frame := &chart.Frame{
		Range:    r,
		BarSpace: chart.BarSpace{Bar: req.BarWidth},
		XFunc: func(i int) float64 {
			return req.BarWidth * (float64(i-r.From) + 0.5)
		},
		YFunc:  chart.LinearY(yMin, yMax, req.Height),
		Canvas: recorder,
	}

	handled := chart.Render(bands, settings, frame)

	c.JSON(http.StatusOK, gin.H{
		"handled":  handled,
		"range":    r,
		"yMin":     yMin,
		"yMax":     yMax,
		"commands": recorder.Commands(),
	})
}

func bandExtremes(bands []types.BandPoint) (lo, hi float64) {
	if len(bands) == 0 {
		return 0, 1
	}

	lo, hi = math.Inf(1), math.Inf(-1)
	for _, b := range bands {
		lo = math.Min(lo, b.Lower)
		hi = math.Max(hi, b.Upper)
	}
	return lo, hi
}

func (s *Server) getChart(c *gin.Context) {
	format, err := chart.ParseFormat(c.DefaultQuery("format", s.Config.Chart.Format))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot := s.Store.Snapshot()
	settings, bands, err := computeBands(c, snapshot)
	if err != nil {
		if types.IsConfigurationError(err) {
			abortWithSettingsError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	options := chart.CanvasOptions{
		Title:    s.Config.Chart.Title,
		Width:    s.Config.Chart.Width,
		Height:   s.Config.Chart.Height,
		LogScale: s.Config.Chart.LogScale,
		Window:   s.Config.Chart.Window(),
	}

	if v, ok := c.GetQuery("log"); ok {
		options.LogScale = v == "true" || v == "1"
	}
	if v, err := strconv.Atoi(c.Query("width")); err == nil && v > 0 {
		options.Width = v
	}
	if v, err := strconv.Atoi(c.Query("height")); err == nil && v > 0 {
		options.Height = v
	}
	if _, ok := c.GetQuery("from"); ok {
		if options.Window, err = queryRange(c, len(snapshot.Prices)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	canvas, err := chart.NewCanvas(snapshot.Prices, bands, settings, options)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := canvas.Render(format, &buf); err != nil {
		log.WithError(err).Error("chart render error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
