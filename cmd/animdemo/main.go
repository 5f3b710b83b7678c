package main

import (
	"fmt"
	"time"

	"flux"
)

func main() {
	app, err := flux.NewApp(nil)
	if err != nil {
		panic(err)
	}

	data := flux.NewObservable[string]()
	for i := 0; i < 6; i++ {
		data.Add(fmt.Sprintf("entry %d", i))
	}

	binding := flux.BindAnimated(app.Clock(), data, 1, flux.AnimatedDispatcher[string]{
		Render: func(item string, index int, progress float64) flux.Component {
			style := flux.DefaultStyle()
			if progress < 1 {
				style = style.Foreground(flux.BrightGreen)
			}
			return flux.Text(fmt.Sprintf("%3d  %s", index, item)).Styled(style)
		},
		Exit: func(item string, progress float64) flux.Component {
			return flux.Text("     " + item).Styled(flux.DefaultStyle().Foreground(flux.BrightBlack).Dim())
		},
	}, 300*time.Millisecond)

	list := binding.List().Border(flux.BorderRounded).Padding(1).Grow(1)
	list.OnChange(app.RequestRender)

	app.SetRoot(list).AddDisposable(binding)

	next := data.Len()
	app.Handle('a', func() {
		data.Insert(data.Len()/2, fmt.Sprintf("entry %d", next))
		next++
	})
	app.Handle('d', func() {
		if data.Len() > 0 {
			data.RemoveAt(data.Len() / 2)
		}
	})
	app.Handle('j', func() { list.Viewport().ScrollBy(1) })
	app.Handle('k', func() { list.Viewport().ScrollBy(-1) })
	app.Handle('q', app.Stop)

	if err := app.Run(); err != nil {
		panic(err)
	}
}
