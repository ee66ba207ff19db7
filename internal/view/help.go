package view

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// Help displays a full-screen help view with keybindings.
type Help struct {
	*tview.Table
	closeFn func()
}

// NewHelp creates a new help view.
func NewHelp() *Help {
	h := &Help{
		Table: tview.NewTable(),
	}
	h.build()
	return h
}

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

// build constructs the help UI.
func (h *Help) build() {
	h.SetBorder(true)
	h.SetTitle(" Bantuan ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)

	h.populateHelp()

	h.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		switch evt.Key() {
		case tcell.KeyEsc, tcell.KeyEnter:
			if h.closeFn != nil {
				h.closeFn()
			}
			return nil
		}
		if evt.Rune() == '?' || evt.Rune() == 'q' {
			if h.closeFn != nil {
				h.closeFn()
			}
			return nil
		}
		return evt
	})
}

// populateHelp fills the help table with keybindings in a 4-column layout.
func (h *Help) populateHelp() {
	// Column 1: Record types
	col1 := []HelpBind{
		{":family", "Keluarga"},
		{":child", "Anak"},
		{":guardian", "Wali"},
		{":employee", "Pegawai"},
		{":spouse", "Pasangan"},
		{":business", "Usaha"},
		{":gallery", "Galeri"},
		{":visit", "Kunjungan"},
		{":document", "Dokumen"},
		{":dashboard", "Ringkasan"},
	}

	// Column 2: General
	col2 := []HelpBind{
		{"<:>", "Perintah"},
		{"</>", "Saring"},
		{"<?>", "Bantuan"},
		{"<esc>", "Kembali"},
		{"<q>", "Keluar"},
		{"<C-r>", "Muat ulang"},
	}

	// Column 3: Navigation
	col3 := []HelpBind{
		{"<j>", "Turun"},
		{"<k>", "Naik"},
		{"<g>", "Awal"},
		{"<G>", "Akhir"},
		{"<pgdn>", "Hal. berikut"},
		{"<pgup>", "Hal. sebelum"},
		{"<enter>", "Detail"},
		{"<C-s>", "Urutkan"},
	}

	// Column 4: Actions
	col4 := []HelpBind{
		{"<d>", "Detail"},
		{"<e>", "Ubah"},
		{"<x>", "Ekspor"},
		{"<u>", "Unggah"},
		{"<C-d>", "Hapus"},
		{"<space>", "Tandai"},
	}

	columns := [][]HelpBind{col1, col2, col3, col4}
	headers := []string{"DATA", "UMUM", "NAVIGASI", "AKSI"}

	maxRows := 0
	for _, col := range columns {
		if len(col) > maxRows {
			maxRows = len(col)
		}
	}

	// Each logical column = key + desc + spacer.
	colWidth := 3
	for colIdx, col := range columns {
		baseCol := colIdx * colWidth

		header := tview.NewTableCell(headers[colIdx]).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false)
		h.SetCell(0, baseCol, header)

		for rowIdx, bind := range col {
			row := rowIdx + 1

			keyCell := tview.NewTableCell(bind.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false)
			h.SetCell(row, baseCol, keyCell)

			descCell := tview.NewTableCell(bind.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1)
			h.SetCell(row, baseCol+1, descCell)
		}

		if colIdx < len(columns)-1 {
			for row := 0; row <= maxRows; row++ {
				spacer := tview.NewTableCell("").
					SetSelectable(false).
					SetExpansion(1)
				h.SetCell(row, baseCol+2, spacer)
			}
		}
	}

	footer := tview.NewTableCell("<esc> untuk menutup").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false)
	h.SetCell(maxRows+2, 0, footer)
}
