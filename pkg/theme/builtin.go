package theme

// registerBuiltins installs the stock palettes.
func registerBuiltins() {
	for _, t := range []Theme{defaultTheme(), gruvboxTheme(), nordTheme()} {
		Register(t)
	}
}

// defaultTheme is the dark neutral palette with a purple accent.
func defaultTheme() Theme {
	return Theme{
		Name:        "default",
		Foreground:  "#d4d4d4",
		Dim:         "#6b6b6b",
		Accent:      "#7C3AED",
		HeaderFg:    "#d4d4d4",
		HeaderBg:    "#2d2d3a",
		RowEvenBg:   "",
		RowOddBg:    "#232330",
		SelectedBg:  "#7C3AED",
		SelectedFg:  "#ffffff",
		CardBorder:  "#3e3e3e",
		CardTitleFg: "#A78BFA",
		StatusOK:    "#4ec970",
		StatusWarn:  "#e5c07b",
		StatusErr:   "#e06c75",
	}
}

func gruvboxTheme() Theme {
	return Theme{
		Name:        "gruvbox",
		Foreground:  "#ebdbb2",
		Dim:         "#928374",
		Accent:      "#fe8019",
		HeaderFg:    "#ebdbb2",
		HeaderBg:    "#3c3836",
		RowEvenBg:   "",
		RowOddBg:    "#32302f",
		SelectedBg:  "#fe8019",
		SelectedFg:  "#1d2021",
		CardBorder:  "#504945",
		CardTitleFg: "#fabd2f",
		StatusOK:    "#b8bb26",
		StatusWarn:  "#fabd2f",
		StatusErr:   "#fb4934",
	}
}

func nordTheme() Theme {
	return Theme{
		Name:        "nord",
		Foreground:  "#d8dee9",
		Dim:         "#4c566a",
		Accent:      "#88c0d0",
		HeaderFg:    "#eceff4",
		HeaderBg:    "#3b4252",
		RowEvenBg:   "",
		RowOddBg:    "#2e3440",
		SelectedBg:  "#88c0d0",
		SelectedFg:  "#2e3440",
		CardBorder:  "#4c566a",
		CardTitleFg: "#81a1c1",
		StatusOK:    "#a3be8c",
		StatusWarn:  "#ebcb8b",
		StatusErr:   "#bf616a",
	}
}
