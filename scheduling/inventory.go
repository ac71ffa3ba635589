package scheduling

import "sort"

// TableInfo adalah snapshot read-only satu meja untuk resolver. Perubahan
// inventaris dilakukan lewat CRUD owner di luar paket ini.
type TableInfo struct {
	TableID     uint
	TableTypeID uint
	TableNumber string
	Capacity    int
	MinCovers   int
	MaxCovers   int
}

// FitTables -> meja yang muat untuk jumlah tamu, urut kapasitas terkecil dulu
// (best fit: tamu berdua tidak ditempatkan di meja 20 orang kalau ada yang
// lebih kecil). Seri kapasitas dipecah dengan nomor meja.
func FitTables(tables []TableInfo, people int) []TableInfo {
	if people < 1 {
		return nil
	}
	var fit []TableInfo
	for _, t := range tables {
		if tableFits(t, people) {
			fit = append(fit, t)
		}
	}
	sort.SliceStable(fit, func(i, j int) bool {
		if fit[i].Capacity != fit[j].Capacity {
			return fit[i].Capacity < fit[j].Capacity
		}
		return fit[i].TableNumber < fit[j].TableNumber
	})
	return fit
}

// tableFits -> meja muat kalau kapasitasnya cukup dan jumlah tamu masih dalam
// banding [min,max] tipe mejanya (kalau tipe menetapkan batas).
func tableFits(t TableInfo, people int) bool {
	seats := t.Capacity
	if t.MaxCovers > 0 && t.MaxCovers < seats {
		seats = t.MaxCovers
	}
	if seats < people {
		return false
	}
	if t.MinCovers > 0 && people < t.MinCovers {
		return false
	}
	return true
}

// TotalCapacity -> jumlah kursi seluruh meja
func TotalCapacity(tables []TableInfo) int {
	total := 0
	for _, t := range tables {
		total += t.Capacity
	}
	return total
}
