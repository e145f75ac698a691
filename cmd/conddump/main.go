// Command conddump decodes persisted condition data and prints it.
//
//	conddump -hex 01100000000200...
//	conddump -file saved.bin
//	conddump -char 42            (reads character_conditions via config)
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/udisondev/condengine/internal/condition"
	"github.com/udisondev/condengine/internal/config"
	"github.com/udisondev/condengine/internal/db"
	"github.com/udisondev/condengine/internal/propstream"
)

func main() {
	var (
		hexData  = flag.String("hex", "", "hex-encoded condition data")
		filePath = flag.String("file", "", "file holding raw condition data")
		charID   = flag.Uint("char", 0, "character id to load from the database")
		cfgPath  = flag.String("config", "config/conditiond.yaml", "daemon config (engine tuning, database)")
	)
	flag.Parse()

	cfg, err := config.LoadConditiond(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conddump: loading config: %v\n", err)
		os.Exit(1)
	}

	data, err := load(*hexData, *filePath, uint32(*charID), cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conddump: %v\n", err)
		os.Exit(1)
	}

	if err := dump(os.Stdout, newFactory(cfg.Engine), data); err != nil {
		fmt.Fprintf(os.Stderr, "conddump: %v\n", err)
		os.Exit(1)
	}
}

// newFactory decodes with the same tuning the daemon writes with.
func newFactory(engine config.Engine) *condition.Factory {
	return condition.NewFactory(condition.Options{
		DamageTickInterval: engine.DamageTickInterval,
		RegenerationTicks:  engine.RegenerationTicks,
	})
}

func load(hexData, filePath string, charID uint32, database config.DatabaseConfig) ([]byte, error) {
	switch {
	case hexData != "":
		data, err := hex.DecodeString(strings.Join(strings.Fields(hexData), ""))
		if err != nil {
			return nil, fmt.Errorf("decoding hex: %w", err)
		}
		return data, nil
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filePath, err)
		}
		return data, nil
	case charID != 0:
		return loadCharacter(charID, database)
	default:
		return nil, errors.New("one of -hex, -file or -char is required")
	}
}

func loadCharacter(charID uint32, database config.DatabaseConfig) ([]byte, error) {
	ctx := context.Background()
	conn, err := db.New(ctx, database.DSN())
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return db.NewConditionRepository(conn.Pool()).Load(ctx, charID)
}

// dump prints every condition in data. Output stops at the first corrupt
// record and its error is returned.
func dump(out io.Writer, f *condition.Factory, data []byte) error {
	if len(data) == 0 {
		fmt.Fprintln(out, "no conditions")
		return nil
	}

	r := propstream.NewReader(data)
	for n := 0; r.Remaining() > 0; n++ {
		offset := r.Position()
		c, err := f.Decode(r)
		if err != nil {
			return fmt.Errorf("record %d at offset %d: %w", n, offset, err)
		}
		fmt.Fprintf(out, "#%d %s\n", n, describe(c))
	}
	return nil
}

func describe(c condition.Condition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type=%s id=%d ticks=%d", c.Type(), c.ID(), c.Ticks())
	if c.SubID() != 0 {
		fmt.Fprintf(&b, " subid=%d", c.SubID())
	}
	if c.IsBuff() {
		b.WriteString(" buff")
	}

	switch v := c.(type) {
	case *condition.Damage:
		if v.PeriodDamage() != 0 {
			fmt.Fprintf(&b, " periodic=%d/%dms", v.PeriodDamage(), v.TickInterval())
		}
		for _, info := range v.Schedule() {
			fmt.Fprintf(&b, " [%d/%dms]", info.Value, info.Interval)
		}
	case *condition.Speed:
		fmt.Fprintf(&b, " delta=%d", v.SpeedDelta())
	case *condition.Light:
		fmt.Fprintf(&b, " level=%d color=%d", v.LightInfo().Level, v.LightInfo().Color)
	case *condition.Outfit:
		fmt.Fprintf(&b, " looktype=%d", v.Outfit().LookType)
	}
	return b.String()
}
