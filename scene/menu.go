package scene

import "github.com/cgfdemo/porcelain/menu"

// TextureLabel names the porcelain texture entry.
const TextureLabel = "Chinese Porcelain (HD Floral)"

// MainMenu builds the control panel's right-click menu operating on s.
// changed is called after every selection so the caller can redraw.
func MainMenu(s *State, changed func()) *menu.Menu {
	notify := func() {
		if changed != nil {
			changed()
		}
	}
	views := &menu.Menu{}
	for _, v := range Views {
		views.Items = append(views.Items, menu.Item{
			Label: v.String(),
			Action: func() {
				if s.SelectView(v) == nil {
					notify()
				}
			},
		})
	}
	colors := &menu.Menu{}
	for _, c := range ColorPresets {
		colors.Items = append(colors.Items, menu.Item{
			Label: c.String(),
			Action: func() {
				if s.SelectColor(c) == nil {
					notify()
				}
			},
		})
	}
	texture := &menu.Menu{Items: []menu.Item{{
		Label: TextureLabel,
		Action: func() {
			s.SelectTexture()
			notify()
		},
	}}}
	return &menu.Menu{Items: []menu.Item{
		{Label: "Camera Angles", Sub: views},
		{Label: "Special Texture", Sub: texture},
		{Label: "Solid Colors", Sub: colors},
	}}
}
