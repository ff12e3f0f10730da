package core

import (
	"github.com/cudkit/udsnap/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. Every key has an English and a Japanese translation registered in init.
// Snap explanations take (zone, distance, reference id, reference name) and sometimes one extra value.
const (
	msgZoneSafe    = "zone.safe"
	msgZoneWarning = "zone.warning"
	msgZoneOff     = "zone.off"

	msgSnapSafe          = "snap.safe"
	msgSnapWarningMoved  = "snap.warning.moved"
	msgSnapWarningKept   = "snap.warning.kept"
	msgSnapOff           = "snap.off"
	msgSnapStrict        = "snap.strict"
	msgSnapPreferSnapped = "snap.prefer.snapped"
	msgSnapPreferKept    = "snap.prefer.kept"

	msgHarmonyBelow        = "harmony.below"
	msgHarmonyHue          = "harmony.suggest.hue"
	msgHarmonyLightness    = "harmony.suggest.lightness"
	msgHarmonyContrast     = "harmony.suggest.contrast"
	msgHarmonyGeneric      = "harmony.suggest.generic"
	msgAltHueShift         = "alternative.hue"
	msgAltLighter          = "alternative.lighter"
	msgAltDarker           = "alternative.darker"
	msgAltUnchanged        = "alternative.unchanged"
	msgAltReverted         = "alternative.reverted"
	msgOptimizeOffSummary  = "optimize.off.summary"
	msgOptimizeOffColor    = "optimize.off.color"
	msgOptimizeAlternative = "optimize.alternative"
)

var translations = map[string][2]string{ // key -> {en, ja}
	msgZoneSafe:    {"Safe", "安全"},
	msgZoneWarning: {"Warning", "注意"},
	msgZoneOff:     {"Off", "範囲外"},

	msgSnapSafe: {
		"%s zone: distance %.3f to %s (%s). The color conforms to the catalogue and is kept unchanged.",
		"%[1]s圏: %[3]s（%[4]s）との距離 %.3[2]f。カタログに適合しているため、そのまま維持します。",
	},
	msgSnapWarningMoved: {
		"%s zone: distance %.3f to %s (%s). Moved %d%% toward the reference, preserving the brand color while improving conformance.",
		"%[1]s圏: %[3]s（%[4]s）との距離 %.3[2]f。ブランドカラーを保ちつつ適合性を高めるため、参照色へ %[5]d%% 近づけました。",
	},
	msgSnapWarningKept: {
		"%s zone: distance %.3f to %s (%s). Kept unchanged to preserve the brand color.",
		"%[1]s圏: %[3]s（%[4]s）との距離 %.3[2]f。ブランドカラーを保つため、そのまま維持します。",
	},
	msgSnapOff: {
		"%s zone: distance %.3f to %s (%s). Pulled toward the reference only up to the warning limit %.3f, preserving as much of the brand color as possible.",
		"%[1]s圏: %[3]s（%[4]s）との距離 %.3[2]f。ブランドカラーをできるだけ保つため、注意圏の上限 %.3[5]f まで参照色へ近づけました。",
	},
	msgSnapStrict: {
		"%s zone: distance %.3f to %s (%s). Snapped to the catalogue color.",
		"%[1]s圏: %[3]s（%[4]s）との距離 %.3[2]f。カタログの色に置き換えました。",
	},
	msgSnapPreferSnapped: {
		"%s zone: distance %.3f to %s (%s). Within the preference limit, so snapped to the catalogue color.",
		"%[1]s圏: %[3]s（%[4]s）との距離 %.3[2]f。優先しきい値以内のため、カタログの色に置き換えました。",
	},
	msgSnapPreferKept: {
		"%s zone: distance %.3f to %s (%s). Beyond the preference limit %.3f, so the brand color is kept.",
		"%[1]s圏: %[3]s（%[4]s）との距離 %.3[2]f。優先しきい値 %.3[5]f を超えるため、ブランドカラーを維持します。",
	},

	msgHarmonyBelow: {
		"Harmony score %.1f is below the threshold %.1f.",
		"調和スコア %.1f がしきい値 %.1f を下回っています。",
	},
	msgHarmonyHue: {
		"Bring accent hues closer to the anchor hue.",
		"アクセントの色相をアンカーの色相に近づけてください。",
	},
	msgHarmonyLightness: {
		"Spread lightness more evenly between light and dark colors.",
		"明るい色と暗い色の明度差をより均等に広げてください。",
	},
	msgHarmonyContrast: {
		"Raise contrast against the anchor to at least 4.5:1.",
		"アンカーとのコントラスト比を 4.5:1 以上にしてください。",
	},
	msgHarmonyGeneric: {
		"Review the overall balance of the palette against the anchor color.",
		"アンカーカラーに対するパレット全体のバランスを見直してください。",
	},

	msgAltHueShift: {
		"hue shifted 30%% toward the anchor",
		"色相をアンカーへ 30%% 近づけました",
	},
	msgAltLighter: {
		"lightness raised by 0.2 to separate it from the anchor",
		"アンカーと区別するため明度を 0.2 上げました",
	},
	msgAltDarker: {
		"lightness lowered by 0.2 to separate it from the anchor",
		"アンカーと区別するため明度を 0.2 下げました",
	},
	msgAltUnchanged: {
		"kept unchanged",
		"変更なし",
	},
	msgAltReverted: {
		"kept unchanged because the adjustment would lower harmony",
		"調整すると調和が下がるため変更なし",
	},

	msgOptimizeOffSummary: {
		"%d of %d colors are outside the catalogue tolerance.",
		"%[2]d 色中 %[1]d 色がカタログの許容範囲外です。",
	},
	msgOptimizeOffColor: {
		"%s is %.3f from %s (%s) and was only pulled to the warning limit.",
		"%[1]s は %[3]s（%[4]s）から %.3[2]f 離れており、注意圏の上限までしか近づけていません。",
	},
	msgOptimizeAlternative: {
		"Use %s (%s) to conform fully; it is the nearest catalogue color.",
		"完全に適合させるには最も近いカタログの色 %s（%s）を使用してください。",
	},
}

func init() {
	for key, t := range translations {
		_ = message.SetString(language.English, key, t[0])
		_ = message.SetString(language.Japanese, key, t[1])
	}
}

// newPrinter returns a printer for the locale, defaulting to English.
func newPrinter(locale schema.Locale) *message.Printer {
	if locale == schema.JapaneseLocale {
		return message.NewPrinter(language.Japanese)
	}
	return message.NewPrinter(language.English)
}

func zoneName(p *message.Printer, z schema.Zone) string {
	switch z {
	case schema.SafeZone:
		return p.Sprintf(msgZoneSafe)
	case schema.WarningZone:
		return p.Sprintf(msgZoneWarning)
	default:
		return p.Sprintf(msgZoneOff)
	}
}

// explainSnap renders the explanation of one snap decision.
func explainSnap(locale schema.Locale, r schema.SnapResult, opts SnapOptions, preferLimit float64) string {
	p := newPrinter(locale)
	ref := r.Nearest.Reference
	zone := zoneName(p, r.Zone)
	name := ref.Name(locale)

	switch opts.Mode {
	case schema.StrictMode:
		return p.Sprintf(msgSnapStrict, zone, r.Distance, ref.ID, name)
	case schema.PreferMode:
		if r.Snapped {
			return p.Sprintf(msgSnapPreferSnapped, zone, r.Distance, ref.ID, name)
		}
		return p.Sprintf(msgSnapPreferKept, zone, r.Distance, ref.ID, name, preferLimit)
	}

	switch r.Zone {
	case schema.SafeZone:
		return p.Sprintf(msgSnapSafe, zone, r.Distance, ref.ID, name)
	case schema.WarningZone:
		if r.Snapped {
			return p.Sprintf(msgSnapWarningMoved, zone, r.Distance, ref.ID, name, int(opts.ReturnFactor*100+0.5))
		}
		return p.Sprintf(msgSnapWarningKept, zone, r.Distance, ref.ID, name)
	default:
		return p.Sprintf(msgSnapOff, zone, r.Distance, ref.ID, name, opts.Thresholds.WarningMax)
	}
}
