package conversation

// User-facing texts, kept in Bahasa Melayu for the Keningau district office.
const (
	msgWelcome = "Selamat datang ke Sistem Temu Janji Pejabat Daerah Keningau! 🏛️\n" +
		"Taip /book untuk menempah janji temu."

	msgChooseOfficer = "Sila pilih pegawai yang ingin anda temui:\n" +
		"1. Pegawai Daerah (DO)\n" +
		"2. Penolong Pegawai Daerah (ADO)"

	msgPickOneOrTwo = "Sila pilih 1 atau 2."
	msgAskName      = "Masukkan nama penuh anda:"
	msgAskPhone     = "Masukkan nombor telefon anda (cth: 0134567890):"
	msgAskEmail     = "Masukkan alamat emel anda:"
	msgAskPurpose   = "Nyatakan tujuan janji temu:"
	msgAskDate      = "Masukkan tarikh pilihan (DD/MM/YYYY):"

	msgInvalidDate = "⚠️ Tarikh yang dimasukkan tidak sah!\n" +
		"Sila masukkan tarikh akan datang (DD/MM/YYYY)."

	msgWeekend = "⛔ Tempahan tidak boleh dibuat pada hujung minggu.\n" +
		"Sila pilih tarikh bekerja (Isnin-Jumaat):"

	msgNoSlots = "⛔ Tiada slot tersedia pada tarikh ini.\n" +
		"Sila cuba tarikh lain:"

	msgChooseTime     = "⌚ Sila pilih masa temu janji:"
	msgPickFromOffers = "Sila pilih masa daripada senarai yang diberikan:"
	msgSlotFull       = "⛔ Slot %s sudah penuh. Pilih masa lain:"
	msgAllSlotsFull   = "⛔ Semua slot sudah penuh. Sila cuba tarikh lain dengan /book"
	msgSessionExpired = "⚠️ Sesi dibatalkan. Sila cuba lagi dengan menaip /book"
	msgCancelled      = "Tempahan dibatalkan."

	msgStoreTrouble = "⚠️ Maaf, sistem tidak dapat menyimpan tempahan buat masa ini. Sila cuba sebentar lagi."

	msgConfirmed = "✅ Tempahan berjaya!\nTarikh: %s\nMasa: %s\nPegawai: %s"
)
