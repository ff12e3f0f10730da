package catalogue

import "github.com/cudkit/udsnap/schema"

// cudEntries is the Color Universal Design recommended set, version 4.
var cudEntries = []schema.ReferenceColor{
	// Accent colors
	{ID: "red", Group: schema.AccentGroup, NameEN: "Red", NameJA: "赤", Hex: "#FF2800"},
	{ID: "yellow", Group: schema.AccentGroup, NameEN: "Yellow", NameJA: "黄色", Hex: "#FAF500"},
	{ID: "green", Group: schema.AccentGroup, NameEN: "Green", NameJA: "緑", Hex: "#35A16B"},
	{ID: "blue", Group: schema.AccentGroup, NameEN: "Blue", NameJA: "青", Hex: "#0041FF"},
	{ID: "sky-blue", Group: schema.AccentGroup, NameEN: "Sky Blue", NameJA: "空色", Hex: "#66CCFF"},
	{ID: "pink", Group: schema.AccentGroup, NameEN: "Pink", NameJA: "ピンク", Hex: "#FF99A0"},
	{ID: "orange", Group: schema.AccentGroup, NameEN: "Orange", NameJA: "オレンジ", Hex: "#FF9900"},
	{ID: "purple", Group: schema.AccentGroup, NameEN: "Purple", NameJA: "紫", Hex: "#9A0079"},
	{ID: "brown", Group: schema.AccentGroup, NameEN: "Brown", NameJA: "茶色", Hex: "#663300"},

	// Base colors
	{ID: "light-pink", Group: schema.BaseGroup, NameEN: "Light Pink", NameJA: "明るいピンク", Hex: "#FFD1D1"},
	{ID: "cream", Group: schema.BaseGroup, NameEN: "Cream", NameJA: "クリーム", Hex: "#FFFF99"},
	{ID: "light-yellow-green", Group: schema.BaseGroup, NameEN: "Light Yellow-Green", NameJA: "明るい黄緑", Hex: "#CBF266"},
	{ID: "light-sky-blue", Group: schema.BaseGroup, NameEN: "Light Sky Blue", NameJA: "明るい空色", Hex: "#B4EBFA"},
	{ID: "beige", Group: schema.BaseGroup, NameEN: "Beige", NameJA: "ベージュ", Hex: "#EDC58F"},
	{ID: "light-green", Group: schema.BaseGroup, NameEN: "Light Green", NameJA: "明るい緑", Hex: "#87E7B0"},
	{ID: "light-purple", Group: schema.BaseGroup, NameEN: "Light Purple", NameJA: "明るい紫", Hex: "#C7B2DE"},

	// Achromatic colors
	{ID: "white", Group: schema.AchromaticGroup, NameEN: "White", NameJA: "白", Hex: "#FFFFFF"},
	{ID: "light-gray", Group: schema.AchromaticGroup, NameEN: "Light Gray", NameJA: "明るいグレー", Hex: "#C8C8CB"},
	{ID: "gray", Group: schema.AchromaticGroup, NameEN: "Gray", NameJA: "グレー", Hex: "#7F878F"},
	{ID: "black", Group: schema.AchromaticGroup, NameEN: "Black", NameJA: "黒", Hex: "#000000"},
}
