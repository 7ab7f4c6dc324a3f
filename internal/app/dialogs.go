package app

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/figochat/desktop/updater"
)

// dialogShowBlocks reports whether MessageDialog.Show returns only once the
// dialog is closed, as the Windows message box does.
const dialogShowBlocks = runtime.GOOS == "windows"

// dismissAfter bounds the wait on platforms that report no dismissal.
const dismissAfter = 30 * time.Minute

// DialogPrompter shows updater dialogs as native message boxes.
type DialogPrompter struct {
	app *application.App
}

func (d DialogPrompter) Ask(ctx context.Context, dlg updater.Dialog) int {
	choice := make(chan int, 1)
	md := d.build(dlg, func(i int) {
		select {
		case choice <- i:
		default:
		}
	})
	md.Show()
	return awaitChoice(ctx, choice, dialogShowBlocks, dlg.Cancel, dismissAfter)
}

func (d DialogPrompter) Inform(dlg updater.Dialog) {
	d.build(dlg, nil).Show()
}

// awaitChoice waits for the index of the clicked button. A dialog that
// closed without a click, a done ctx, or no answer within timeout all
// yield cancel.
func awaitChoice(ctx context.Context, choice <-chan int, closed bool, cancel int, timeout time.Duration) int {
	if closed {
		select {
		case i := <-choice:
			return i
		default:
			slog.Debug("dialog dismissed")
			return cancel
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case i := <-choice:
		return i
	case <-ctx.Done():
		return cancel
	case <-timer.C:
		slog.Info("dialog unanswered, treating as dismissed", "after", timeout)
		return cancel
	}
}

func (d DialogPrompter) build(dlg updater.Dialog, onClick func(int)) *application.MessageDialog {
	var md *application.MessageDialog
	switch dlg.Kind {
	case updater.DialogQuestion:
		md = d.app.Dialog.Question()
	case updater.DialogError:
		md = d.app.Dialog.Error()
	default:
		md = d.app.Dialog.Info()
	}

	msg := dlg.Message
	if dlg.Detail != "" {
		msg += "\n\n" + dlg.Detail
	}
	md.SetTitle(dlg.Title)
	md.SetMessage(msg)

	for i := range dlg.Buttons {
		idx := i
		b := md.AddButton(buttonLabel(runtime.GOOS, dlg, i))
		if onClick != nil {
			b.OnClick(func() { onClick(idx) })
		}
		if i == dlg.Default {
			md.SetDefaultButton(b)
		}
		if len(dlg.Buttons) > 1 && i == dlg.Cancel {
			md.SetCancelButton(b)
		}
	}
	return md
}

// buttonLabel returns the label button i is registered under. The Windows
// message box draws its own Yes/No buttons and reports the click by that
// name, so question buttons take those names there.
func buttonLabel(goos string, dlg updater.Dialog, i int) string {
	if goos == "windows" && dlg.Kind == updater.DialogQuestion {
		switch i {
		case dlg.Default:
			return "Yes"
		case dlg.Cancel:
			return "No"
		}
	}
	return dlg.Buttons[i]
}
