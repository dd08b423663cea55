package handlers

import (
	"html/template"

	"github.com/rumahkos/kos-bff/internal/domain"
)

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"statusLabel": func(status domain.BookingStatus) string {
		switch status {
		case domain.StatusAccept:
			return "Diterima"
		case domain.StatusReject:
			return "Ditolak"
		default:
			return "Pending"
		}
	},
}).Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Nota Booking #{{.ID}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 40px; color: #1f2937; }
  .nota { max-width: 560px; margin: 0 auto; border: 1px solid #e5e7eb; border-radius: 8px; padding: 32px; }
  h1 { font-size: 20px; margin: 0 0 4px; }
  .muted { color: #6b7280; font-size: 13px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  td { padding: 8px 0; border-bottom: 1px solid #f3f4f6; font-size: 14px; }
  td:first-child { color: #6b7280; width: 40%; }
  .badge { display: inline-block; padding: 2px 10px; border-radius: 9999px; font-size: 12px; }
  .badge-accept { background: #dcfce7; color: #166534; }
  .badge-reject { background: #fee2e2; color: #991b1b; }
  .badge-pending { background: #fef9c3; color: #854d0e; }
  @media print { .no-print { display: none; } }
</style>
</head>
<body onload="window.print()">
<div class="nota">
  <h1>Nota Booking Kos</h1>
  <div class="muted">No. Booking: #{{.ID}}</div>
  <table>
    <tr><td>Nama Kos</td><td>{{.KosName}}</td></tr>
    <tr><td>Alamat</td><td>{{.KosAddress}}</td></tr>
    <tr><td>Penyewa</td><td>{{.UserName}}</td></tr>
    <tr><td>Tanggal Mulai</td><td>{{.StartDate}}</td></tr>
    <tr><td>Tanggal Selesai</td><td>{{.EndDate}}</td></tr>
    <tr><td>Harga per Bulan</td><td>Rp {{.PricePerMonth}}</td></tr>
    <tr><td>Status</td><td>
      {{- $label := statusLabel .Status -}}
      {{- if eq $label "Diterima"}}<span class="badge badge-accept">Diterima</span>
      {{- else if eq $label "Ditolak"}}<span class="badge badge-reject">Ditolak</span>
      {{- else}}<span class="badge badge-pending">Pending</span>{{end -}}
    </td></tr>
  </table>
  <p class="muted no-print" style="margin-top: 24px;">Simpan nota ini sebagai bukti pemesanan.</p>
</div>
</body>
</html>
`))
