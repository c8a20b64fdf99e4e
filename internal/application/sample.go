package application

import (
	"github.com/tutorly/roster/internal/persistence"
)

// SampleRecords is the starter roster seeded into an empty database.
func SampleRecords() []persistence.PersonRecord {
	return []persistence.PersonRecord{
		sample(1, "tutor", "Alex Yeoh", "87438807", "alexyeoh@example.com", "Blk 30 Geylang Street 29, #06-40", "Mathematics", "2-5", "30-45"),
		sample(2, "student", "Bernice Yu", "99272758", "berniceyu@example.com", "Blk 30 Lorong 3 Serangoon Gardens, #07-18", "Science", "2", "30"),
		sample(3, "tutor", "Charlotte Oliveiro", "93210283", "charlotte@example.com", "Blk 11 Ang Mo Kio Street 74, #11-04", "English", "3-6", "35-50"),
		sample(4, "student", "David Li", "91031282", "lidavid@example.com", "Blk 436 Serangoon Gardens Street 26, #16-43", "Mathematics", "3", "35"),
		sample(5, "tutor", "Irfan Ibrahim", "92492021", "irfan@example.com", "Blk 47 Tampines Street 20, #17-35", "Science", "1-4", "30-60"),
		sample(6, "student", "Roy Balakrishnan", "92624417", "royb@example.com", "Blk 45 Aljunied Street 85, #11-31", "English", "4", "40"),
		sample(7, "tutor", "Meera Tan", "98112233", "meera@example.com", "Blk 22 Toa Payoh Lorong 5, #03-12", "Mathematics", "1-3", "20-35"),
		sample(8, "tutor", "Samuel Ong", "96554433", "samuelong@example.com", "Blk 120 Jurong East Street 13, #10-21", "English", "1-4", "25-40"),
		sample(9, "student", "Jia Wei Lim", "88990011", "jiawei.lim@example.com", "Blk 18 Bishan Street 24, #05-19", "Mathematics", "2", "25"),
		sample(10, "student", "Priya Nair", "87991234", "priyanair@example.com", "Blk 210 Ang Mo Kio Ave 10, #07-08", "Mathematics", "5", "40"),
		sample(11, "student", "Hannah Lee", "90112233", "hannah.lee@example.com", "Blk 55 Bukit Batok East Ave 5, #02-09", "Science", "1", "35"),
		sample(12, "student", "Marcus Goh", "83445566", "marcusgoh@example.com", "Blk 77 Hougang Ave 3, #14-02", "Science", "4", "55"),
		sample(13, "student", "Zhi Yuan Koh", "94556677", "zhiyuan.koh@example.com", "Blk 9 Yishun Ring Road, #12-27", "English", "3", "35"),
		sample(14, "student", "Nurul Aisyah", "87776655", "nurul.aisyah@example.com", "Blk 3 Pasir Ris Drive 6, #04-15", "English", "2", "28"),
		sample(15, "student", "Wei Ming Tan", "91334455", "weiming.tan@example.com", "Blk 402 Sembawang Drive, #08-41", "Mathematics", "1", "22"),
		sample(16, "student", "Chloe Ng", "96778899", "chloeng@example.com", "Blk 66 Punggol Field, #16-18", "Science", "3", "30"),
	}
}

func sample(id int, role, name, phone, email, address, subject, level, price string) persistence.PersonRecord {
	return persistence.PersonRecord{
		ID:      id,
		Role:    role,
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Subject: subject,
		Level:   level,
		Price:   price,
	}
}
